package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultCloseTimeout bounds how long Close waits for buffered messages.
const DefaultCloseTimeout = 5 * time.Second

// NATSPublisher publishes transitions as JSON messages on a NATS subject.
type NATSPublisher struct {
	conn         *nats.Conn
	subject      string
	closeTimeout time.Duration
	closed       chan struct{}
}

// NATSConfig holds connection settings for the NATS publisher.
type NATSConfig struct {
	URL     string
	Token   string
	Subject string
	// CloseTimeout bounds Close. Zero means DefaultCloseTimeout.
	CloseTimeout time.Duration
}

// ConnectNATS dials the NATS server and returns a publisher.
func ConnectNATS(cfg NATSConfig) (*NATSPublisher, error) {
	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	closeTimeout := cfg.CloseTimeout
	if closeTimeout <= 0 {
		closeTimeout = DefaultCloseTimeout
	}

	closed := make(chan struct{})
	opts := []nats.Option{
		nats.Name("kamishibai"),
		nats.DrainTimeout(closeTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			close(closed)
		}),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	slog.Info("nats connected", "url", conn.ConnectedUrl(), "subject", subject)

	return &NATSPublisher{
		conn:         conn,
		subject:      subject,
		closeTimeout: closeTimeout,
		closed:       closed,
	}, nil
}

// Publish sends t on the configured subject.
func (p *NATSPublisher) Publish(_ context.Context, t Transition) error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encode transition: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish transition for card %s: %w", t.CardID, err)
	}
	return nil
}

// Close flushes buffered transitions to the server, drains the connection and
// returns once it is closed or the close timeout expires.
func (p *NATSPublisher) Close() error {
	if p.conn.IsClosed() {
		return nil
	}

	var errs []error
	if err := p.conn.FlushTimeout(p.closeTimeout); err != nil {
		errs = append(errs, fmt.Errorf("flush nats connection: %w", err))
	}

	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return errors.Join(append(errs, fmt.Errorf("drain nats connection: %w", err))...)
	}

	select {
	case <-p.closed:
	case <-time.After(p.closeTimeout):
		p.conn.Close()
		errs = append(errs, fmt.Errorf("nats connection not drained within %s", p.closeTimeout))
	}

	slog.Info("nats connection closed")

	return errors.Join(errs...)
}
