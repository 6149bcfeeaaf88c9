// Package consumer assembles the ingestion application: both Kafka
// consumers on top of the bootstrap graph.
package consumer

import (
	"context"

	"github.com/quantledger/pnl-engine/internal/bootstrap"
	ingest "github.com/quantledger/pnl-engine/internal/consumer"
	"github.com/quantledger/pnl-engine/pkg/config"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// App is the running consumer application.
type App struct {
	Bootstrap *bootstrap.Bootstrap

	TradeConsumer *ingest.TradeConsumer
	OrderConsumer *ingest.OrderConsumer
}

// Init initializes the consumer application.
func Init(ctx context.Context, cfg *config.Config) (*App, error) {
	b, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dbTx := postgresql.NewTransaction(b.DB)

	app := &App{
		Bootstrap: b,
		TradeConsumer: ingest.NewTradeConsumer(
			cfg.TradeKafka,
			cfg.Engine,
			b.Usecase.PnlUsecase,
			b.Repository.SnapshotRepository,
			b.Logger,
		),
		OrderConsumer: ingest.NewOrderConsumer(
			cfg.OrderKafka,
			cfg.Engine,
			b.Usecase.ReconcileUsecase,
			b.Repository.OrderRecordRepository,
			b.Logger,
			dbTx,
		),
	}

	return app, nil
}

// Run starts both consumers and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) {
	go a.TradeConsumer.Start(ctx)
	go a.TradeConsumer.Subscribe(ctx)
	go a.OrderConsumer.Start(ctx)
	go a.OrderConsumer.Subscribe(ctx)

	<-ctx.Done()
}

// Shutdown stops the consumers and releases resources.
func (a *App) Shutdown() error {
	tradeErr := a.TradeConsumer.Stop()
	orderErr := a.OrderConsumer.Stop()
	a.Bootstrap.Close()

	if tradeErr != nil {
		return tradeErr
	}
	return orderErr
}
