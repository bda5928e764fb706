package query

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Well-known keys shared across the application.
const (
	KeyProfile = "profileDataCache"
	KeyCart    = "orderCartCache"
)

// State classifies a Result.
type State int

const (
	NeverFetched State = iota
	Failed
	Fetched
)

func (s State) String() string {
	switch s {
	case Failed:
		return "failed"
	case Fetched:
		return "fetched"
	default:
		return "never-fetched"
	}
}

// Result is the latest known outcome for a key.
type Result[T any] struct {
	Value     T
	HasValue  bool
	Err       error
	Failures  int // consecutive failed fetches
	UpdatedAt time.Time
	Fetching  bool
}

// State reports which of the three result cases r is.
func (r Result[T]) State() State {
	switch {
	case r.HasValue:
		return Fetched
	case r.Err != nil:
		return Failed
	default:
		return NeverFetched
	}
}

// Absent reports whether no value is available.
func (r Result[T]) Absent() bool {
	return !r.HasValue
}

// FetchedResult wraps v as a successful result for callers building inputs
// by hand.
func FetchedResult[T any](v T) Result[T] {
	return Result[T]{Value: v, HasValue: true}
}

// FetchFunc retrieves the value for a key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Options configure a Query.
type Options struct {
	// Enabled gates every fetch. Nil means always enabled.
	Enabled func() bool
}

// Client owns the cache entries.
type Client struct {
	ctx context.Context
	log logrus.FieldLogger
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	subs    []func(key string)
}

type entry struct {
	value    any
	hasValue bool
	err      error
	failures int
	updated  time.Time

	inFlight bool
	gen      uint64
	cancel   context.CancelFunc
	started  int
}

// NewClient builds a Client. Fetches run under ctx and are cancelled with it.
func NewClient(ctx context.Context, logger logrus.FieldLogger) *Client {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Client{
		ctx:     ctx,
		log:     logger.WithField("component", "query"),
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Subscribe registers fn to run whenever an entry settles or is invalidated.
// fn runs on the fetching goroutine, outside the client lock.
func (c *Client) Subscribe(fn func(key string)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs[:len(c.subs):len(c.subs)], fn)
}

// inFlight reports whether a fetch for key is running.
func (c *Client) inFlight(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.inFlight
}

// started returns how many fetches have been started for key.
func (c *Client) started(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.started
	}
	return 0
}

// Invalidate drops the cached value for key and abandons any in-flight fetch.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	wasInFlight := e.inFlight
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.inFlight = false
	e.value = nil
	e.hasValue = false
	e.err = nil
	e.failures = 0
	e.updated = time.Time{}
	subs := c.subs
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"key": key, "abandoned": wasInFlight}).Debug("entry invalidated")
	notify(subs, key)
}

func (c *Client) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// begin marks key in flight when allow accepts the entry. It returns false
// when a fetch is already running or allow rejects.
func (c *Client) begin(key string, allow func(*entry) bool) (context.Context, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	if e.inFlight {
		c.log.WithField("key", key).Debug("fetch coalesced")
		return nil, 0, false
	}
	if allow != nil && !allow(e) {
		return nil, 0, false
	}
	ctx, cancel := context.WithCancel(c.ctx)
	e.inFlight = true
	e.cancel = cancel
	e.started++
	return ctx, e.gen, true
}

func (c *Client) settle(key string, gen uint64, value any, err error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.gen != gen {
		c.mu.Unlock()
		c.log.WithField("key", key).Debug("discarding stale result")
		return
	}
	e.inFlight = false
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.updated = c.now()
	if err != nil {
		e.err = err
		e.failures++
	} else {
		e.value = value
		e.hasValue = true
		e.err = nil
		e.failures = 0
	}
	failures := e.failures
	subs := c.subs
	c.mu.Unlock()

	if err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "failures": failures}).WithError(err).Warn("fetch failed")
	} else {
		c.log.WithField("key", key).Debug("fetch succeeded")
	}
	notify(subs, key)
}

func notify(subs []func(string), key string) {
	for _, fn := range subs {
		fn(key)
	}
}

// Query is a typed handle on one key of a Client.
type Query[T any] struct {
	client *Client
	key    string
	fetch  FetchFunc[T]
	opts   Options
}

// New returns a handle for key. Handles created with the same key share the
// cached result and the in-flight fetch.
func New[T any](c *Client, key string, fetch FetchFunc[T], opts Options) *Query[T] {
	return &Query[T]{client: c, key: key, fetch: fetch, opts: opts}
}

// Enabled reports whether fetches are currently allowed.
func (q *Query[T]) Enabled() bool {
	return q.opts.Enabled == nil || q.opts.Enabled()
}

// Get returns the latest known result. A value cached under the key with a
// different type reads as absent.
func (q *Query[T]) Get() Result[T] {
	c := q.client
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[q.key]
	if !ok {
		return Result[T]{}
	}
	r := Result[T]{
		Err:       e.err,
		Failures:  e.failures,
		UpdatedAt: e.updated,
		Fetching:  e.inFlight,
	}
	if e.hasValue {
		if v, ok := e.value.(T); ok {
			r.Value = v
			r.HasValue = true
		}
	}
	return r
}

// Refetch starts a fetch in the background. It returns false when fetching
// is disabled or one is already in flight.
func (q *Query[T]) Refetch() bool {
	return q.start(nil)
}

// Ensure fetches only when the key has never been fetched.
func (q *Query[T]) Ensure() bool {
	return q.start(func(e *entry) bool {
		return !e.hasValue && e.err == nil
	})
}

// Invalidate drops the cached value and abandons any in-flight fetch.
func (q *Query[T]) Invalidate() {
	q.client.Invalidate(q.key)
}

func (q *Query[T]) start(allow func(*entry) bool) bool {
	if !q.Enabled() {
		q.client.log.WithField("key", q.key).Debug("fetch disabled")
		return false
	}
	ctx, gen, ok := q.client.begin(q.key, allow)
	if !ok {
		return false
	}
	go func() {
		value, err := q.fetch(ctx)
		q.client.settle(q.key, gen, value, err)
	}()
	return true
}
