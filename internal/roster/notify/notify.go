// Package notify renders and delivers invitation emails. Delivery is
// asynchronous: callers enqueue on a Dispatcher and never wait for the
// mail server.
package notify

import (
	"context"
	"errors"
)

var (
	ErrQueueFull        = errors.New("notify: queue full")
	ErrDispatcherClosed = errors.New("notify: dispatcher closed")
)

// Email is a rendered plain-text message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single email. Implementations must honour ctx
// cancellation; the Dispatcher bounds every call with a timeout.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Email) error

func (f SenderFunc) Send(ctx context.Context, msg Email) error { return f(ctx, msg) }
