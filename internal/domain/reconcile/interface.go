package reconcile

import (
	"context"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
)

// Usecase is the interface for the order reconciliation usecase.
// The now parameter is the wall-clock instant used as last-resort submitted
// time; it is injected so the call stays deterministic.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	Process(ctx context.Context, req v1.ReconcileRequest, now time.Time) (*v1.ReconcileResult, error)
}
