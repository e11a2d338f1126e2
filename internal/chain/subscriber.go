package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Subscriber opens a log subscription on the ledger.
type Subscriber interface {
	Subscribe(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
}

// EthSubscriber subscribes through a JSON-RPC websocket endpoint.
type EthSubscriber struct {
	client *ethclient.Client
}

// DialSubscriber connects to the ledger node at rpcURL.
func DialSubscriber(ctx context.Context, rpcURL string) (*EthSubscriber, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger node: %w", err)
	}
	return &EthSubscriber{client: client}, nil
}

// Subscribe implements Subscriber.
func (s *EthSubscriber) Subscribe(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return s.client.SubscribeFilterLogs(ctx, q, ch)
}

// Close closes the underlying RPC connection.
func (s *EthSubscriber) Close() {
	s.client.Close()
}
