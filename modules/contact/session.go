package contact

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// Session is one browser tab's form: a controller and the bus its surface
// publishes to.
type Session struct {
	ID   uuid.UUID
	Form *contactform.Controller
	bus  *broadcast.MemoryBroadcaster[Patch]

	mu       sync.Mutex
	lastSeen time.Time
	expired  atomic.Bool
}

// Subscribe streams signal patches until ctx ends or the session expires.
func (s *Session) Subscribe(ctx context.Context) broadcast.Subscriber[Patch] {
	return s.bus.Subscribe(ctx)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// idle reports whether the session has gone unused for ttl with nobody watching.
func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	if s.bus.SubscriberCount() > 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) >= ttl
}

// Expired reports whether the session has been closed by the registry.
func (s *Session) Expired() bool {
	return s.expired.Load()
}

func (s *Session) close() {
	s.expired.Store(true)
	_ = s.Form.Close()
	_ = s.bus.Close()
}

// Registry keeps the live sessions and expires idle ones.
type Registry struct {
	ttl    time.Duration
	buffer int
	opts   []contactform.Option
	clock  clockwork.Clock
	log    *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	closed   bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFormOptions sets the options every session controller is built with.
func WithFormOptions(opts ...contactform.Option) RegistryOption {
	return func(r *Registry) { r.opts = append(r.opts, opts...) }
}

func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the clock used for idle tracking and the reaper ticker.
func WithClock(c clockwork.Clock) RegistryOption {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config, opts ...RegistryOption) *Registry {
	r := &Registry{
		ttl:      cfg.SessionTTL,
		buffer:   cfg.StreamBuffer,
		clock:    clockwork.NewRealClock(),
		log:      slog.Default(),
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("contact_sessions"))
	return r
}

// Create starts a new session with an empty form.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	bus := broadcast.NewMemoryBroadcaster[Patch](r.buffer)
	s := &Session{
		ID:       uuid.New(),
		bus:      bus,
		lastSeen: r.clock.Now(),
	}
	s.Form = contactform.New(signalSurface{bus: bus}, r.opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		s.close()
		return nil, ErrRegistryClosed
	}
	r.sessions[s.ID] = s
	r.log.DebugContext(ctx, "session created", logger.SessionID(s.ID))
	return s, nil
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	r.mu.RLock()
	s, ok := r.sessions[uid]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.clock.Now())
	return s, nil
}

func (r *Registry) touch(s *Session) {
	s.touch(r.clock.Now())
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reap closes sessions idle for longer than the TTL and returns how many it removed.
func (r *Registry) Reap() int {
	now := r.clock.Now()
	var expired []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.idle(now, r.ttl) {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.close()
		r.log.Debug("session expired", logger.SessionID(s.ID))
	}
	return len(expired)
}

// Run reaps every interval until ctx ends, then closes the registry.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := r.clock.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-t.Chan():
			if n := r.Reap(); n > 0 {
				r.log.Info("expired idle sessions", slog.Int("count", n))
			}
		}
	}
}

// Close ends every session. Later calls to Create fail with ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// Ready fails once the registry is closed. Used as a readiness check.
func (r *Registry) Ready(context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrRegistryClosed
	}
	return nil
}
