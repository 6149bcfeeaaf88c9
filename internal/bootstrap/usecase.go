package bootstrap

import (
	pnlDomain "github.com/quantledger/pnl-engine/internal/domain/pnl"
	reconcileDomain "github.com/quantledger/pnl-engine/internal/domain/reconcile"
	pnlUc "github.com/quantledger/pnl-engine/internal/usecase/pnl"
	reconcileUc "github.com/quantledger/pnl-engine/internal/usecase/reconcile"
)

// Usecase holds the application usecases.
type Usecase struct {
	PnlUsecase       pnlDomain.Usecase
	ReconcileUsecase reconcileDomain.Usecase
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.PnlUsecase = pnlUc.NewUsecase(b.Logger)
	b.Usecase.ReconcileUsecase = reconcileUc.NewUsecase(b.Logger)
}
