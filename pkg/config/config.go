package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	PostgreSQL postgresql.Config `envPrefix:"POSTGRESQL_"`
	TradeKafka KafkaConfig       `envPrefix:"TRADE_KAFKA_"`
	OrderKafka KafkaConfig       `envPrefix:"ORDER_KAFKA_"`
	Engine     EngineConfig      `envPrefix:"ENGINE_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"pnl-engine"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// KafkaConfig represents one Kafka consumer configuration.
type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"pnl-engine"`
}

// EngineConfig carries the account-level engine parameters.
type EngineConfig struct {
	ProductID       string `env:"PRODUCT_ID" envDefault:"BTC-USD"`
	MakerFeeRate    string `env:"MAKER_FEE_RATE" envDefault:"0.0025"`
	TakerFeeRate    string `env:"TAKER_FEE_RATE" envDefault:"0.004"`
	CutoffTimestamp int64  `env:"CUTOFF_TIMESTAMP_US" envDefault:"0"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
