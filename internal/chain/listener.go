// Package chain attaches to the TaskChain contract and feeds normalized task
// events into the indexer queue.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mtlprog/taskchain/internal/config"
	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/logger"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// Sink receives normalized ledger events. Submit may block while the sink is full.
type Sink interface {
	Submit(ctx context.Context, ev domain.ChainEvent) error
}

// Listener keeps a log subscription open and forwards decoded events to a Sink.
type Listener struct {
	sub     Subscriber
	decoder *Decoder
	sink    Sink
	cfg     config.Chain
	metrics *telemetry.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	started   atomic.Bool
	listening atomic.Bool
}

// NewListener creates a Listener. metrics may be nil.
func NewListener(sub Subscriber, decoder *Decoder, sink Sink, cfg config.Chain, metrics *telemetry.Metrics) *Listener {
	return &Listener{
		sub:     sub,
		decoder: decoder,
		sink:    sink,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.Component("chain"),
		tracer:  telemetry.Tracer("github.com/mtlprog/taskchain/internal/chain"),
	}
}

// Start subscribes to the contract's task events and processes them in a
// background goroutine until ctx is done. Calling Start after a successful
// start is a no-op. A failed initial subscription returns an error wrapping
// domain.ErrSubscriptionFailure.
func (l *Listener) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return nil
	}

	logs := make(chan types.Log, l.cfg.QueueSize)
	sub, err := l.subscribe(ctx, logs,
		backoff.WithMaxTries(l.cfg.SubscribeAttempts),
	)
	if err != nil {
		l.started.Store(false)
		l.logger.Error("ledger subscription failed",
			"contract", l.cfg.ContractAddress,
			"attempts", l.cfg.SubscribeAttempts,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailure, err)
	}

	l.setListening(true)
	l.logger.Info("listening for ledger events", "contract", l.cfg.ContractAddress)

	go l.run(ctx, sub, logs)
	return nil
}

// Listening reports whether a live subscription is attached.
func (l *Listener) Listening() bool {
	return l.listening.Load()
}

func (l *Listener) setListening(up bool) {
	l.listening.Store(up)
	l.metrics.SetListening(up)
}

func (l *Listener) subscribe(ctx context.Context, logs chan types.Log, opts ...backoff.RetryOption) (ethereum.Subscription, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = l.cfg.ReconnectInitial
	policy.MaxInterval = l.cfg.ReconnectMax

	opts = append([]backoff.RetryOption{
		backoff.WithBackOff(policy),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.logger.Warn("ledger subscribe attempt failed", "retry_in", next, "error", err)
		}),
	}, opts...)

	return backoff.Retry(ctx, func() (ethereum.Subscription, error) {
		return l.sub.Subscribe(ctx, l.decoder.Query(), logs)
	}, opts...)
}

func (l *Listener) run(ctx context.Context, sub ethereum.Subscription, logs chan types.Log) {
	defer l.setListening(false)

	for {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			l.logger.Info("ledger listener stopped")
			return

		case err := <-sub.Err():
			sub.Unsubscribe()
			l.setListening(false)
			l.logger.Warn("ledger subscription dropped, reconnecting", "error", err)

			next, rerr := l.subscribe(ctx, logs,
				backoff.WithMaxElapsedTime(l.cfg.ReconnectMaxElapsed),
			)
			if rerr != nil {
				if ctx.Err() == nil {
					l.logger.Error("ledger subscription lost", "error", rerr)
				}
				return
			}
			sub = next
			l.setListening(true)
			l.metrics.Reconnected()
			l.logger.Info("ledger subscription restored")

		case lg := <-logs:
			if err := l.handle(ctx, lg); err != nil {
				sub.Unsubscribe()
				l.logger.Info("ledger listener stopped", "error", err)
				return
			}
		}
	}
}

// handle decodes one log and forwards it. Malformed logs are dropped; only a
// cancelled context is returned as an error.
func (l *Listener) handle(ctx context.Context, lg types.Log) error {
	ctx, span := l.tracer.Start(ctx, "chain.handle_log",
		trace.WithAttributes(
			attribute.String("tx_hash", lg.TxHash.Hex()),
			attribute.Int64("block", int64(lg.BlockNumber)),
		),
	)
	defer span.End()

	ev, err := l.decoder.Decode(lg)
	if err != nil {
		l.metrics.EventMalformed(malformedReason(err))
		l.logger.Warn("dropping malformed ledger event",
			"tx_hash", lg.TxHash.Hex(),
			"log_index", lg.Index,
			"block", lg.BlockNumber,
			"error", err,
		)
		return nil
	}

	span.SetAttributes(
		attribute.String("kind", string(ev.Kind())),
		attribute.Int64("task_id", int64(ev.TaskID)),
	)
	return l.sink.Submit(ctx, ev)
}
