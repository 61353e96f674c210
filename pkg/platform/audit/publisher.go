package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"campus/pkg/requestcontext"
)

// Publisher records audit events. In sync mode (the default) Emit persists
// before returning; with an async buffer, Emit enqueues and a background
// worker persists, trading durability on crash for admin-path latency.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger

	inbox  chan Event
	wg     sync.WaitGroup
	closed chan struct{}
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given
// channel capacity.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) { p.inbox = make(chan Event, size) }
}

// WithSink fans persisted events out to a sink.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) { p.sink = sink }
}

// WithLogger sets the logger used for sink and worker failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		closed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit records an event, stamping ID, timestamp, and request correlation ID
// when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		default:
			// Buffer full: fall back to synchronous persistence rather
			// than dropping the event.
			return p.persist(ctx, event)
		}
	}
	return p.persist(ctx, event)
}

func (p *Publisher) persist(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink publish failed",
				"action", string(event.Action),
				"key", event.Key,
				"error", err,
			)
		}
	}
	return nil
}

// ListRecent returns the most recent persisted events, newest first.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}

func (p *Publisher) run() {
	defer p.wg.Done()
	// Background persistence is bounded per event so Close cannot hang on a
	// stuck store.
	for {
		select {
		case event := <-p.inbox:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := p.persist(ctx, event); err != nil {
				p.logger.Error("async audit persist failed",
					"action", string(event.Action),
					"key", event.Key,
					"error", err,
				)
			}
			cancel()
		case <-p.closed:
			// Drain what is already queued, then stop.
			for {
				select {
				case event := <-p.inbox:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := p.persist(ctx, event); err != nil {
						p.logger.Error("async audit persist failed",
							"action", string(event.Action),
							"key", event.Key,
							"error", err,
						)
					}
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Close stops the async worker after draining queued events. Safe to call in
// sync mode.
func (p *Publisher) Close() {
	select {
	case <-p.closed:
		return
	default:
	}
	close(p.closed)
	p.wg.Wait()
}
