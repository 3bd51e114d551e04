// Package notify delivers report messages over email and webhook channels.
package notify

import (
	"context"
	"log/slog"
)

// Channel represents a notification channel type.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelWebhook Channel = "webhook"
)

// Message represents a notification message.
type Message struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Format string `json:"format"` // "plain" or "markdown"
}

// Notifier defines the interface for sending notifications.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
	Channel() Channel
}

// Dispatcher routes messages to the registered notification channels.
type Dispatcher struct {
	notifiers map[Channel]Notifier
	order     []Channel
	logger    *slog.Logger
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		notifiers: make(map[Channel]Notifier),
		logger:    slog.Default(),
	}
}

// Register adds a notifier to the dispatcher, replacing any notifier
// already registered for the same channel.
func (d *Dispatcher) Register(n Notifier) {
	if _, ok := d.notifiers[n.Channel()]; !ok {
		d.order = append(d.order, n.Channel())
	}
	d.notifiers[n.Channel()] = n
}

// Channels returns the registered channels in registration order.
func (d *Dispatcher) Channels() []Channel {
	out := make([]Channel, len(d.order))
	copy(out, d.order)
	return out
}

// Result is the outcome of sending to one channel.
type Result struct {
	Channel Channel
	Err     error
}

// Send delivers a message to each channel in order and reports every
// channel's outcome. Unregistered channels are skipped.
func (d *Dispatcher) Send(ctx context.Context, channels []Channel, msg Message) []Result {
	results := make([]Result, 0, len(channels))
	for _, ch := range channels {
		notifier, ok := d.notifiers[ch]
		if !ok {
			d.logger.Warn("notifier not registered", "channel", ch)
			continue
		}
		err := notifier.Send(ctx, msg)
		if err != nil {
			d.logger.Error("notification failed", "channel", ch, "error", err)
		} else {
			d.logger.Info("notification sent", "channel", ch, "title", msg.Title)
		}
		results = append(results, Result{Channel: ch, Err: err})
	}
	return results
}

// SendEach sends a message to all registered channels and reports each outcome.
func (d *Dispatcher) SendEach(ctx context.Context, msg Message) []Result {
	return d.Send(ctx, d.Channels(), msg)
}
