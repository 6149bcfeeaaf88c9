package bootstrap

import (
	"github.com/quantledger/pnl-engine/internal/infrastructure/postgresql/orderrecord"
	"github.com/quantledger/pnl-engine/internal/infrastructure/postgresql/snapshot"
)

// Repository holds the application repositories.
type Repository struct {
	SnapshotRepository    snapshot.SnapshotRepository
	OrderRecordRepository orderrecord.OrderRecordRepository
}

// registerRepository registers the repositories.
func (b *Bootstrap) registerRepository() {
	b.Repository.SnapshotRepository = snapshot.NewRepository(b.DB, b.Logger)
	b.Repository.OrderRecordRepository = orderrecord.NewRepository(b.DB, b.Logger)
}
