package pnl

import (
	"context"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
)

// Usecase is the interface for the PnL summary usecase.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	Summarise(ctx context.Context, req v1.SummariseRequest) (*v1.Summary, error)
}
