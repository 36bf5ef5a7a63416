package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

// StreamName is the JetStream stream holding board events.
const StreamName = "BOARD_EVENTS"

// AckTimeout bounds how long a publish waits for the JetStream ack. The
// console goroutine publishes, so a stalled server must not hold it.
const AckTimeout = 2 * time.Second

type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn       *nats.Conn
	js         jetStream
	prefix     string
	ackTimeout time.Duration
}

// NewPublisher connects to NATS and makes sure the event stream exists.
// Subjects are "<prefix>.events.<kind>".
func NewPublisher(url, prefix string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("trainboard"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{subjectToken(prefix) + ".events.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js, prefix: prefix, ackTimeout: AckTimeout}, nil
}

// Subject returns the subject events of the given kind are published on.
func Subject(prefix string, kind domain.EventKind) string {
	return subjectToken(prefix) + ".events." + subjectToken(string(kind))
}

func (p *Publisher) PublishBoardEvent(ctx context.Context, event *domain.BoardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := p.ackContext(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}

	_, err = p.js.Publish(Subject(p.prefix, event.Kind), data,
		nats.Context(ctx),
		nats.MsgId(event.ID),
	)
	return err
}

// ackContext derives the context a single publish waits on.
func (p *Publisher) ackContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := p.ackTimeout
	if timeout <= 0 {
		timeout = AckTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// IsConnected reports the connection state.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// subjectToken makes s safe as a single NATS subject token.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
