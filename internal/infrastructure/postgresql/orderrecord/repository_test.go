package orderrecord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/quantledger/pnl-engine/pkg/logger"
	mockLogger "github.com/quantledger/pnl-engine/pkg/logger/mock"
	mockPg "github.com/quantledger/pnl-engine/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestFromRecords(t *testing.T) {
	endTime := time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)
	stopPrice := decimal.RequireFromString("95")

	open := FromOpenRecord(v1.OpenRecord{
		OrderID:    "o1",
		Side:       v1.SideSell,
		LimitPrice: decimal.RequireFromString("100"),
		BaseSize:   decimal.RequireFromString("1"),
		Status:     "OPEN",
		EndTime:    &endTime,
		ProductID:  "BTC-USD",
		StopPrice:  &stopPrice,
	})
	assert.Equal(t, "o1", open.OrderID)
	assert.Equal(t, "SELL", open.Side)
	assert.Equal(t, &endTime, open.EndTime)
	assert.True(t, open.StopPrice.Equal(stopPrice))

	executed := FromExecutedRecord(v1.ExecutedRecord{
		OrderID:           "o2",
		SubmittedAt:       endTime,
		SubmittedInferred: true,
		Side:              v1.SideBuy,
		Status:            "FILLED",
		PostOnly:          true,
	})
	assert.Equal(t, "o2", executed.OrderID)
	assert.Equal(t, "BUY", executed.Side)
	assert.True(t, executed.SubmittedInferred)
	assert.True(t, executed.PostOnly)
	assert.Nil(t, executed.FilledSize)
}

func TestOrderRecord_ReplaceOpen(t *testing.T) {
	ctx := context.Background()

	rows := []*OpenRow{
		{
			OrderID:    "o1",
			Side:       "BUY",
			LimitPrice: decimal.RequireFromString("100"),
			BaseSize:   decimal.RequireFromString("1"),
			Status:     "OPEN",
			ProductID:  "BTC-USD",
		},
	}

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLog *mockLogger.MockInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLog *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, `DELETE FROM open_orders WHERE product_id = $1`, "BTC-USD").
					Return(pgconn.CommandTag{}, nil)

				mockpg.EXPECT().
					CopyFrom(ctx, pgx.Identifier{"open_orders"}, gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockLog.EXPECT().
					Info("Replaced open orders", logger.Field{
						Key:   "copyCount",
						Value: int64(1),
					})
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "delete error aborts before the copy",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLog *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, `DELETE FROM open_orders WHERE product_id = $1`, "BTC-USD").
					Return(pgconn.CommandTag{}, errors.New("delete failed"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "copy error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLog *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, `DELETE FROM open_orders WHERE product_id = $1`, "BTC-USD").
					Return(pgconn.CommandTag{}, nil)

				mockpg.EXPECT().
					CopyFrom(ctx, pgx.Identifier{"open_orders"}, gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("copy failed"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockpg := mockPg.NewMockPostgreSQLClient(ctrl)
			mockLog := mockLogger.NewMockInterface(ctrl)
			tc.mockFn(mockpg, mockLog)

			repo := NewRepository(mockpg, mockLog)
			err := repo.ReplaceOpen(ctx, "BTC-USD", rows)
			tc.assertFn(t, err)
		})
	}
}

func TestOrderRecord_UpsertExecutedEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockpg := mockPg.NewMockPostgreSQLClient(ctrl)
	mockLog := mockLogger.NewMockInterface(ctrl)

	// no batch is sent for an empty row set
	repo := NewRepository(mockpg, mockLog)
	assert.NoError(t, repo.UpsertExecuted(context.Background(), nil))
}
