// Package publisher delivers the assembled report through the configured
// notification channels.
package publisher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/RobinCoderZhao/daily-report/pkg/notify"
)

// Subject is the email subject of every report.
const Subject = "Daily Report"

// Sender sends a message to every registered channel and reports each outcome.
type Sender interface {
	SendEach(ctx context.Context, msg notify.Message) []notify.Result
}

// Publisher sends report text and reports the outcome to a console writer.
type Publisher struct {
	sender Sender
	out    io.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher. Outcome lines are printed to out.
func NewPublisher(sender Sender, out io.Writer) *Publisher {
	return &Publisher{
		sender: sender,
		out:    out,
		logger: slog.Default(),
	}
}

// Message wraps report text into the outgoing message.
func Message(text string) notify.Message {
	return notify.Message{
		Title:  Subject,
		Body:   text,
		Format: "plain",
	}
}

// Deliver sends the report. Delivery failures are printed and logged per
// channel but never returned; the caller carries on as if the send
// succeeded. The result reports whether every channel went through.
func (p *Publisher) Deliver(ctx context.Context, text string) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			p.fail(notify.ChannelEmail, fmt.Errorf("panic: %v", r))
			sent = false
		}
	}()

	sent = true
	for _, res := range p.sender.SendEach(ctx, Message(text)) {
		if res.Err != nil {
			p.fail(res.Channel, res.Err)
			sent = false
			continue
		}
		if res.Channel == notify.ChannelEmail {
			fmt.Fprintln(p.out, "Email sent successfully!")
		}
	}
	return sent
}

func (p *Publisher) fail(ch notify.Channel, err error) {
	p.logger.Error("report delivery failed", "channel", ch, "error", err)
	fmt.Fprintf(p.out, "Failed to send %s: %v\n", ch, err)
}
