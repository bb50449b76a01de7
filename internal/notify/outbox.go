package notify

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// OutboxConfig sizes the outbox.
type OutboxConfig struct {
	Workers    int
	QueueSize  int
	MaxRetries int

	// InitialInterval is the first retry delay. Zero uses the backoff default.
	InitialInterval time.Duration
}

// Outbox delivers messages in the background through a bounded queue and a
// fixed pool of workers. Failed sends are retried with exponential backoff
// and finally logged; callers never see delivery errors.
type Outbox struct {
	sender Sender
	cfg    OutboxConfig
	queue  chan Message
	logger zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewOutbox creates an outbox and starts its workers.
func NewOutbox(sender Sender, cfg OutboxConfig, logger zerolog.Logger) *Outbox {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Outbox{
		sender: sender,
		cfg:    cfg,
		queue:  make(chan Message, cfg.QueueSize),
		logger: logger.With().Str("component", "outbox").Logger(),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < cfg.Workers; i++ {
		o.wg.Add(1)
		go o.worker(i)
	}

	o.logger.Info().
		Int("workers", cfg.Workers).
		Int("queue_size", cfg.QueueSize).
		Msg("outbox started")

	return o
}

// Enqueue queues msg for delivery. It drops the message when the queue is
// full or the outbox is closed.
func (o *Outbox) Enqueue(msg Message) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.logger.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("outbox closed, message dropped")
		return false
	}

	select {
	case o.queue <- msg:
		return true
	default:
		o.logger.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("outbox full, message dropped")
		return false
	}
}

// Close stops accepting messages and waits for queued ones to be delivered.
// If ctx expires first, in-flight retries are abandoned.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		o.cancel()
		o.logger.Info().Msg("outbox drained")
		return nil
	case <-ctx.Done():
		o.cancel()
		<-done
		o.logger.Warn().Msg("outbox closed before draining")
		return ctx.Err()
	}
}

func (o *Outbox) worker(id int) {
	defer o.wg.Done()

	for msg := range o.queue {
		o.deliver(id, msg)
	}
}

func (o *Outbox) deliver(worker int, msg Message) {
	attempts := 0
	operation := func() error {
		attempts++
		return o.sender.Send(o.ctx, msg)
	}

	err := backoff.RetryNotify(operation, o.backOff(), func(err error, wait time.Duration) {
		o.logger.Warn().
			Err(err).
			Int("worker", worker).
			Str("to", msg.To).
			Dur("retry_in", wait).
			Msg("mail delivery failed, retrying")
	})
	if err != nil {
		o.logger.Error().
			Err(err).
			Int("worker", worker).
			Int("attempts", attempts).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("mail delivery abandoned")
		return
	}

	o.logger.Debug().Int("worker", worker).Str("to", msg.To).Msg("mail delivered")
}

func (o *Outbox) backOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if o.cfg.InitialInterval > 0 {
		exp.InitialInterval = o.cfg.InitialInterval
		exp.MaxInterval = 10 * o.cfg.InitialInterval
	}

	var b backoff.BackOff = exp
	if o.cfg.MaxRetries >= 0 {
		b = backoff.WithMaxRetries(exp, uint64(o.cfg.MaxRetries))
	}
	return backoff.WithContext(b, o.ctx)
}
