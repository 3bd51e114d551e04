package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"time"
)

// EmailConfig holds email notification configuration.
type EmailConfig struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST"` // e.g. "smtp.gmail.com"
	SMTPPort string `yaml:"smtp_port" env:"SMTP_PORT"` // "587" for STARTTLS, "465" for implicit TLS
	From     string `yaml:"from" env:"SENDER_EMAIL"`
	To       string `yaml:"to" env:"RECEIVER_EMAIL"`
	Password string `yaml:"password" env:"EMAIL_PASSWORD"` // SMTP or app-specific password
}

// DefaultEmailConfig returns the Gmail submission defaults.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{SMTPHost: "smtp.gmail.com", SMTPPort: "587"}
}

type emailNotifier struct {
	cfg         EmailConfig
	dialTimeout time.Duration
}

// NewEmailNotifier creates an email notifier for a single recipient.
func NewEmailNotifier(cfg EmailConfig) Notifier {
	return &emailNotifier{cfg: cfg, dialTimeout: 10 * time.Second}
}

func (e *emailNotifier) Channel() Channel {
	return ChannelEmail
}

func (e *emailNotifier) Send(ctx context.Context, msg Message) error {
	body, err := buildMessage(e.cfg.From, e.cfg.To, msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := net.JoinHostPort(e.cfg.SMTPHost, e.cfg.SMTPPort)
	var client *smtp.Client
	if e.cfg.SMTPPort == "465" {
		client, err = e.dialTLS(ctx, addr)
	} else {
		client, err = e.dialSTARTTLS(ctx, addr)
	}
	if err != nil {
		return fmt.Errorf("SMTP connect: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", e.cfg.From, e.cfg.Password, e.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth: %w", err)
	}
	if err := client.Mail(e.cfg.From); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %w", err)
	}
	if err := client.Rcpt(e.cfg.To); err != nil {
		return fmt.Errorf("SMTP RCPT TO %s: %w", e.cfg.To, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("SMTP write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP close data: %w", err)
	}
	return client.Quit()
}

func (e *emailNotifier) dialTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	d := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: e.dialTimeout},
		Config:    &tls.Config{ServerName: e.cfg.SMTPHost},
	}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("TLS dial %s: %w", addr, err)
	}
	client, err := smtp.NewClient(conn, e.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP client: %w", err)
	}
	return client, nil
}

func (e *emailNotifier) dialSTARTTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	d := &net.Dialer{Timeout: e.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	client, err := smtp.NewClient(conn, e.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP client: %w", err)
	}
	if err := client.StartTLS(&tls.Config{ServerName: e.cfg.SMTPHost}); err != nil {
		client.Close()
		return nil, fmt.Errorf("STARTTLS: %w", err)
	}
	return client, nil
}

// buildMessage renders a multipart/mixed message with one text/plain part.
func buildMessage(from, to string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Title))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=\"utf-8\""},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
