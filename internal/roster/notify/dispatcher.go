package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DispatcherConfig sizes the queue and the worker pool.
type DispatcherConfig struct {
	QueueSize   int           `env:"QUEUE_SIZE"`
	Workers     int           `env:"WORKERS"`
	SendTimeout time.Duration `env:"SEND_TIMEOUT"`
}

// Dispatcher delivers queued emails on a fixed pool of workers. Enqueue
// never blocks: a full queue is reported back to the caller, who surfaces it
// as a soft warning. Delivery failures are logged and dropped.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
	cfg    DispatcherConfig

	mu     sync.RWMutex
	closed bool
	queue  chan Email
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Zero config values fall back to a
// 256-entry queue, two workers and a ten second send timeout.
func NewDispatcher(sender Sender, logger *slog.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	return &Dispatcher{
		sender: sender,
		logger: logger,
		cfg:    cfg,
		queue:  make(chan Email, cfg.QueueSize),
	}
}

// Start launches the workers. It is non-blocking.
func (d *Dispatcher) Start() {
	for i := range d.cfg.Workers {
		d.wg.Add(1)
		go d.work(i)
	}
	d.logger.Info("notification dispatcher started",
		"workers", d.cfg.Workers,
		"queue_size", d.cfg.QueueSize,
	)
}

// Enqueue schedules msg for delivery.
func (d *Dispatcher) Enqueue(ctx context.Context, msg Email) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for workers to drain it, or for ctx to
// expire, whichever comes first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(id, msg)
	}
}

func (d *Dispatcher) deliver(worker int, msg Email) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SendTimeout)
	defer cancel()

	start := time.Now()
	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("failed to deliver notification",
			slog.Int("worker", worker),
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
		return
	}
	d.logger.Debug("notification delivered",
		slog.Int("worker", worker),
		slog.String("to", msg.To),
		slog.Duration("took", time.Since(start)),
	)
}
