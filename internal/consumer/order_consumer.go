package consumer

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	reconcileDomain "github.com/quantledger/pnl-engine/internal/domain/reconcile"
	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/quantledger/pnl-engine/internal/infrastructure/postgresql/orderrecord"
	"github.com/quantledger/pnl-engine/pkg/config"
	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// OrderConsumer consumes raw order/fill batches and persists the
// reconciled records.
type OrderConsumer struct {
	kafkaReader *kafka.Reader

	reconcileUsecase reconcileDomain.Usecase
	orderRecordRepo  orderrecord.OrderRecordRepository
	engineConfig     config.EngineConfig
	logger           logger.Interface

	msgChan chan kafka.Message
	dbTx    postgresql.Transaction
}

// NewOrderConsumer creates a new OrderConsumer.
func NewOrderConsumer(
	kafkaConfig config.KafkaConfig,
	engineConfig config.EngineConfig,
	reconcileUsecase reconcileDomain.Usecase,
	orderRecordRepo orderrecord.OrderRecordRepository,
	logger logger.Interface,
	dbTx postgresql.Transaction,
) *OrderConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaConfig.Brokers,
		Topic:       kafkaConfig.Topic,
		GroupID:     kafkaConfig.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &OrderConsumer{
		kafkaReader:      kafkaReader,
		reconcileUsecase: reconcileUsecase,
		orderRecordRepo:  orderRecordRepo,
		engineConfig:     engineConfig,
		logger:           logger,
		msgChan:          make(chan kafka.Message),
		dbTx:             dbTx,
	}
}

// Start starts the OrderConsumer.
func (c *OrderConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "order_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop stops the OrderConsumer.
func (c *OrderConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe subscribes to the OrderConsumer.
func (c *OrderConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_subscribe",
	})

	for msg := range c.msgChan {
		var req v1.ReconcileRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			c.logger.ErrorContext(ctx, errors.TracerFromDetails(errors.NewErrorDetails(
				"malformed order batch: "+err.Error(),
				string(errors.ErrMalformedPayload),
				"payload",
			)), logger.Field{
				Key:   "action",
				Value: "unmarshal_order_batch",
			})
			continue
		}

		if err := c.handleBatch(ctx, req); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_order_batch",
			})
			continue
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *OrderConsumer) handleBatch(ctx context.Context, req v1.ReconcileRequest) error {
	if req.DefaultProductID == "" {
		req.DefaultProductID = c.engineConfig.ProductID
	}

	result, err := c.reconcileUsecase.Process(ctx, req, time.Now().UTC())
	if err != nil {
		return err
	}

	openRows := make([]*orderrecord.OpenRow, 0, len(result.OpenRecords))
	for _, record := range result.OpenRecords {
		openRows = append(openRows, orderrecord.FromOpenRecord(record))
	}
	executedRows := make([]*orderrecord.ExecutedRow, 0, len(result.ExecutedRecords))
	for _, record := range result.ExecutedRecords {
		executedRows = append(executedRows, orderrecord.FromExecutedRecord(record))
	}

	// Both record sets land atomically so readers never see a half-applied
	// batch.
	txCtx, err := c.dbTx.Begin(ctx)
	if err != nil {
		return err
	}
	defer c.dbTx.Rollback(txCtx)

	if err := c.orderRecordRepo.ReplaceOpen(txCtx, req.DefaultProductID, openRows); err != nil {
		return err
	}
	if err := c.orderRecordRepo.UpsertExecuted(txCtx, executedRows); err != nil {
		return err
	}

	return c.dbTx.Commit(txCtx)
}
