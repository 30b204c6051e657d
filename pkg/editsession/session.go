// Package editsession drives the edit form of a single resource: load a
// snapshot, edit a working copy, submit it once, then navigate away.
package editsession

import (
	"context"
	"errors"
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Submitting
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// LoadPolicy decides what a failed initial fetch leaves behind.
type LoadPolicy int

const (
	// LoadDegraded reaches Ready with a zero working copy and flags Degraded.
	LoadDegraded LoadPolicy = iota
	// LoadStrict parks the session in Error and refuses submits.
	LoadStrict
)

const (
	DefaultNavigateDelay = 1500 * time.Millisecond

	MsgGenericError    = "An error occurred"
	MsgUnexpectedError = "An unexpected error occurred"
)

var (
	ErrBusy          = errors.New("editsession: submit already in flight")
	ErrNotReady      = errors.New("editsession: session is not ready")
	ErrClosed        = errors.New("editsession: session closed")
	ErrMountMismatch = errors.New("editsession: session already mounted for another id")
	ErrLoadFailed    = errors.New("editsession: initial load failed")
	ErrNotMounted    = errors.New("editsession: session not mounted")
	errNoRemote      = errors.New("editsession: remote is required")
)

// Remote is the resource API as seen by a session.
type Remote[T any] interface {
	Get(ctx context.Context, id int64) (T, error)
	// Update returns the stored snapshot and the server's status message.
	Update(ctx context.Context, id int64, v T) (T, string, error)
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Navigator interface {
	Navigate(path string)
}

type Timer interface {
	Stop() bool
}

type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// ServerError is implemented by errors that carry a message from the server.
// An empty message means the server gave none.
type ServerError interface {
	error
	ServerMessage() string
}

// Message returns the text shown to the user for err. Raw transport errors
// are never shown.
func Message(err error) string {
	var se ServerError
	if errors.As(err, &se) {
		if msg := se.ServerMessage(); msg != "" {
			return msg
		}
		return MsgGenericError
	}
	return MsgUnexpectedError
}

type Option func(*options)

type options struct {
	listPath string
	delay    time.Duration
	policy   LoadPolicy
	clock    Clock
	observe  func(from, to State)
}

// WithListPath sets where the session navigates after a successful submit.
func WithListPath(p string) Option { return func(o *options) { o.listPath = p } }

func WithNavigateDelay(d time.Duration) Option { return func(o *options) { o.delay = d } }

func WithLoadPolicy(p LoadPolicy) Option { return func(o *options) { o.policy = p } }

func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

// WithObserver reports every state transition, including the transient Error.
// f runs with the session locked and must not call back into it.
func WithObserver(f func(from, to State)) Option { return func(o *options) { o.observe = f } }

// Session holds the snapshot-plus-working-copy pair of one resource.
// Snapshot only ever changes from a server response.
type Session[T any] struct {
	remote Remote[T]
	notify Notifier
	nav    Navigator
	opts   options

	mu       sync.Mutex
	state    State
	id       int64
	mounted  bool
	snapshot T
	working  T
	degraded bool
	closed   bool
	timer    Timer
}

func New[T any](remote Remote[T], notify Notifier, nav Navigator, opts ...Option) (*Session[T], error) {
	if remote == nil {
		return nil, errNoRemote
	}
	o := options{delay: DefaultNavigateDelay, clock: realClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session[T]{remote: remote, notify: notify, nav: nav, opts: o}, nil
}

// transition must be called with mu held.
func (s *Session[T]) transition(to State) {
	from := s.state
	s.state = to
	if s.opts.observe != nil {
		s.opts.observe(from, to)
	}
}

// Mount loads the resource once. Mounting the same id again is a no-op.
func (s *Session[T]) Mount(ctx context.Context, id int64) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.mounted && s.id == id:
		s.mu.Unlock()
		return nil
	case s.mounted:
		s.mu.Unlock()
		return ErrMountMismatch
	}
	s.mounted = true
	s.id = id
	s.transition(Loading)
	s.mu.Unlock()

	v, err := s.remote.Get(ctx, id)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err == nil {
		s.snapshot, s.working = v, v
		s.transition(Ready)
		s.mu.Unlock()
		return nil
	}
	var zero T
	s.snapshot, s.working = zero, zero
	var result error
	if s.opts.policy == LoadStrict {
		s.transition(Error)
		result = ErrLoadFailed
	} else {
		s.degraded = true
		s.transition(Ready)
	}
	s.mu.Unlock()

	s.notifyError(Message(err))
	return result
}

// Edit applies f to the working copy. Only allowed in Ready.
func (s *Session[T]) Edit(f func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	f(&s.working)
	return nil
}

// Submit sends the working copy. A second call while the first is in flight
// returns ErrBusy without touching the remote.
func (s *Session[T]) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return ErrBusy
	}
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	id, v := s.id, s.working
	s.transition(Submitting)
	s.mu.Unlock()

	out, msg, err := s.remote.Update(ctx, id, v)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.transition(Error)
		s.transition(Ready)
		s.mu.Unlock()
		s.notifyError(Message(err))
		return err
	}
	s.snapshot, s.working = out, out
	s.degraded = false
	s.transition(Success)
	if s.nav != nil && s.opts.listPath != "" {
		s.timer = s.opts.clock.AfterFunc(s.opts.delay, s.navigate)
	}
	s.mu.Unlock()

	if s.notify != nil {
		s.notify.Success(msg)
	}
	return nil
}

func (s *Session[T]) navigate() {
	s.mu.Lock()
	closed := s.closed
	s.timer = nil
	s.mu.Unlock()
	if !closed {
		s.nav.Navigate(s.opts.listPath)
	}
}

// Close tears the session down and cancels a pending navigation. The result
// of an in-flight Update is discarded.
func (s *Session[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session[T]) readyLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case !s.mounted:
		return ErrNotMounted
	case s.state == Error:
		return ErrLoadFailed
	case s.state != Ready:
		return ErrNotReady
	}
	return nil
}

func (s *Session[T]) notifyError(msg string) {
	if s.notify != nil {
		s.notify.Error(msg)
	}
}

func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Working returns a copy of the working copy. Reference fields share memory.
func (s *Session[T]) Working() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working
}

func (s *Session[T]) Snapshot() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Degraded reports that the working copy was not seeded from the server.
func (s *Session[T]) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Session[T]) ID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}
