package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; shadow tasks then live in memory only.
	DefaultDatabaseURL = ""
)

// Chain holds the ledger subscription settings.
type Chain struct {
	RPCURL          string `env:"TASKCHAIN_RPC_URL"          envDefault:"ws://127.0.0.1:8545"`
	ContractAddress string `env:"TASKCHAIN_CONTRACT_ADDRESS" envDefault:"0x5FbDB2315678afecb367f032d93F642f64180aa3"`

	// QueueSize bounds the channel between the subscription and the indexer.
	QueueSize int `env:"TASKCHAIN_QUEUE_SIZE" envDefault:"256"`

	SubscribeAttempts   uint          `env:"TASKCHAIN_SUBSCRIBE_ATTEMPTS"    envDefault:"5"`
	ReconnectInitial    time.Duration `env:"TASKCHAIN_RECONNECT_INITIAL"     envDefault:"1s"`
	ReconnectMax        time.Duration `env:"TASKCHAIN_RECONNECT_MAX"         envDefault:"30s"`
	ReconnectMaxElapsed time.Duration `env:"TASKCHAIN_RECONNECT_MAX_ELAPSED" envDefault:"0s"` // 0 retries until shutdown
}

// Live holds websocket settings for board viewers.
type Live struct {
	OriginPatterns []string `env:"TASKCHAIN_WS_ORIGINS" envSeparator:"," envDefault:"localhost:*,127.0.0.1:*"`
}

// Telemetry holds tracing settings. Tracing is off when Endpoint is empty.
type Telemetry struct {
	ServiceName string `env:"TASKCHAIN_SERVICE_NAME"  envDefault:"taskchain"`
	Endpoint    string `env:"TASKCHAIN_OTEL_ENDPOINT"`
	Enabled     bool   `env:"TASKCHAIN_OTEL_ENABLED"  envDefault:"true"`
}

// LoadChain loads ledger settings from the environment.
func LoadChain() (Chain, error) {
	var cfg Chain
	if err := env.Parse(&cfg); err != nil {
		return Chain{}, fmt.Errorf("parse chain env: %w", err)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.SubscribeAttempts == 0 {
		cfg.SubscribeAttempts = 1
	}
	return cfg, nil
}

// LoadLive loads websocket settings from the environment.
func LoadLive() (Live, error) {
	var cfg Live
	if err := env.Parse(&cfg); err != nil {
		return Live{}, fmt.Errorf("parse live env: %w", err)
	}
	return cfg, nil
}

// LoadTelemetry loads tracing settings from the environment.
func LoadTelemetry() (Telemetry, error) {
	var cfg Telemetry
	if err := env.Parse(&cfg); err != nil {
		return Telemetry{}, fmt.Errorf("parse telemetry env: %w", err)
	}
	return cfg, nil
}
