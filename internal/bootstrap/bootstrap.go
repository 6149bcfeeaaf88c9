// Package bootstrap wires configuration, storage, repositories and usecases
// into a runnable application graph.
package bootstrap

import (
	"context"

	"github.com/quantledger/pnl-engine/pkg/config"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// Bootstrap holds the application dependency graph.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	DB         postgresql.PostgreSQLClient
	Repository Repository
	Usecase    Usecase
}

// New builds the full dependency graph.
func New(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		return nil, err
	}

	db, err := postgresql.NewClient(ctx, cfg.PostgreSQL)
	if err != nil {
		return nil, err
	}

	b := &Bootstrap{
		Config: cfg,
		Logger: log,
		DB:     db,
	}

	b.registerRepository()
	b.registerUsecase()

	return b, nil
}

// Close releases the graph's external resources.
func (b *Bootstrap) Close() {
	if b.DB != nil {
		b.DB.Close()
	}
}
