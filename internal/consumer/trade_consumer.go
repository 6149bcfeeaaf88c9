package consumer

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	pnlDomain "github.com/quantledger/pnl-engine/internal/domain/pnl"
	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/quantledger/pnl-engine/internal/infrastructure/postgresql/snapshot"
	"github.com/quantledger/pnl-engine/pkg/config"
	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/quantledger/pnl-engine/pkg/logger"
)

// TradeConsumer consumes trade batches and persists the resulting PnL
// summary snapshots.
type TradeConsumer struct {
	kafkaReader *kafka.Reader

	pnlUsecase   pnlDomain.Usecase
	snapshotRepo snapshot.SnapshotRepository
	engineConfig config.EngineConfig
	logger       logger.Interface

	msgChan chan kafka.Message
}

// NewTradeConsumer creates a new TradeConsumer.
func NewTradeConsumer(
	kafkaConfig config.KafkaConfig,
	engineConfig config.EngineConfig,
	pnlUsecase pnlDomain.Usecase,
	snapshotRepo snapshot.SnapshotRepository,
	logger logger.Interface,
) *TradeConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaConfig.Brokers,
		Topic:       kafkaConfig.Topic,
		GroupID:     kafkaConfig.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &TradeConsumer{
		kafkaReader:  kafkaReader,
		pnlUsecase:   pnlUsecase,
		snapshotRepo: snapshotRepo,
		engineConfig: engineConfig,
		logger:       logger,
		msgChan:      make(chan kafka.Message),
	}
}

// Start starts the TradeConsumer.
func (c *TradeConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting trade consumer", logger.Field{
		Key:   "action",
		Value: "trade_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "trade_consumer_stop",
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

// Stop stops the TradeConsumer.
func (c *TradeConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping trade consumer", logger.Field{
		Key:   "action",
		Value: "trade_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe subscribes to the TradeConsumer.
func (c *TradeConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to trade consumer", logger.Field{
		Key:   "action",
		Value: "trade_consumer_subscribe",
	})

	for msg := range c.msgChan {
		var req v1.SummariseRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			c.logger.ErrorContext(ctx, errors.TracerFromDetails(errors.NewErrorDetails(
				"malformed trade batch: "+err.Error(),
				string(errors.ErrMalformedPayload),
				"payload",
			)), logger.Field{
				Key:   "action",
				Value: "unmarshal_trade_batch",
			})
			continue
		}

		if err := c.handleBatch(ctx, req); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_trade_batch",
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

func (c *TradeConsumer) handleBatch(ctx context.Context, req v1.SummariseRequest) error {
	// Batches may omit call parameters; the engine defaults fill them in.
	if req.MakerFeeRate == "" {
		req.MakerFeeRate = c.engineConfig.MakerFeeRate
	}
	if req.TakerFeeRate == "" {
		req.TakerFeeRate = c.engineConfig.TakerFeeRate
	}
	now := time.Now().UTC()
	if req.NowMicros == 0 {
		req.NowMicros = now.UnixMicro()
	}
	if req.CutoffMicros == 0 {
		req.CutoffMicros = c.engineConfig.CutoffTimestamp
	}

	summary, err := c.pnlUsecase.Summarise(ctx, req)
	if err != nil {
		return err
	}

	rows := snapshot.FromSummary(summary, c.engineConfig.ProductID, now)
	if len(rows) == 0 {
		return nil
	}

	return c.snapshotRepo.StoreBatch(ctx, rows)
}
