// Package board owns the notice, event and user collections and persists them
// through a store.Backend. Every successful mutation is broadcast to
// subscribers so views can re-render.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/store"
)

var (
	// ErrUsernameTaken is returned by Register for a duplicate username.
	ErrUsernameTaken = errors.New("board: username already taken")
	// ErrInvalidCredentials is returned by Login when no user matches.
	ErrInvalidCredentials = errors.New("board: invalid credentials")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("board: invalid input")

	errNoBackend = errors.New("board: no backend configured")
)

// Change is broadcast after the board's data changes.
type Change struct {
	// Key is the store key that changed, or empty when everything was reloaded.
	Key string
}

// Board is the single writer of the durable collections.
type Board struct {
	backend  store.Backend
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	notices []notice.Notice
	events  []notice.Event
	users   []notice.User
	current *notice.User
	role    notice.Role
	lastID  int64
	raw     map[string][]byte

	subMu sync.Mutex
	subs  map[chan Change]struct{}
}

// Option customizes a Board.
type Option func(*Board)

// WithClock overrides the time source used for id assignment.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger used for degraded-path reporting.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// New creates a Board over backend. Call Load before use.
func New(backend store.Backend, opts ...Option) *Board {
	b := &Board{
		backend:  backend,
		validate: newValidator(),
		log:      zerolog.Nop(),
		now:      time.Now,
		raw:      make(map[string][]byte),
		subs:     make(map[chan Change]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reads the persisted collections. Any collection that is absent (or
// unreadable) is replaced with the seed dataset and written back. Absent data
// is never an error; only a failure to persist the seed is reported.
func (b *Board) Load(ctx context.Context) error {
	if b.backend == nil {
		return errNoBackend
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	if !b.loadKey(ctx, store.KeyNotices, &b.notices) {
		b.notices = seedNotices()
		errs = append(errs, b.persistLocked(ctx, store.KeyNotices, b.notices))
	}
	if !b.loadKey(ctx, store.KeyEvents, &b.events) {
		b.events = seedEvents()
		errs = append(errs, b.persistLocked(ctx, store.KeyEvents, b.events))
	}
	if !b.loadKey(ctx, store.KeyUsers, &b.users) {
		b.users = seedUsers()
		errs = append(errs, b.persistLocked(ctx, store.KeyUsers, b.users))
	}
	var cur notice.User
	if b.loadKey(ctx, store.KeyCurrentUser, &cur) && cur.Username != "" {
		b.current = &cur
		b.role = cur.Role
	}
	b.recomputeLastID()
	b.broadcast(Change{})
	return errors.Join(errs...)
}

// loadKey decodes key into dst, reporting whether usable data was present.
func (b *Board) loadKey(ctx context.Context, key string, dst any) bool {
	data, err := b.backend.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.log.Warn().Err(err).Str("key", key).Msg("read failed, reseeding")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("corrupt data, reseeding")
		return false
	}
	b.raw[key] = data
	return true
}

// Reload re-reads every collection from the backend and broadcasts a Change
// when anything differs from what this board last read or wrote.
func (b *Board) Reload(ctx context.Context) (bool, error) {
	if b.backend == nil {
		return false, errNoBackend
	}
	b.mu.Lock()
	changed := false
	for _, key := range []string{store.KeyNotices, store.KeyEvents, store.KeyUsers} {
		data, err := b.backend.Read(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			b.mu.Unlock()
			return false, fmt.Errorf("board: reload %s: %w", key, err)
		}
		if bytes.Equal(data, b.raw[key]) {
			continue
		}
		var decodeErr error
		switch key {
		case store.KeyNotices:
			var ns []notice.Notice
			if decodeErr = json.Unmarshal(data, &ns); decodeErr == nil {
				b.notices = ns
			}
		case store.KeyEvents:
			var es []notice.Event
			if decodeErr = json.Unmarshal(data, &es); decodeErr == nil {
				b.events = es
			}
		case store.KeyUsers:
			var us []notice.User
			if decodeErr = json.Unmarshal(data, &us); decodeErr == nil {
				b.users = us
			}
		}
		if decodeErr != nil {
			b.log.Warn().Err(decodeErr).Str("key", key).Msg("ignoring unreadable external change")
			continue
		}
		b.raw[key] = data
		changed = true
	}
	if changed {
		b.recomputeLastID()
	}
	b.mu.Unlock()

	if changed {
		b.broadcast(Change{})
	}
	return changed, nil
}

// Watch reloads the board whenever the backend reports an external change.
// It is a no-op for backends that cannot watch.
func (b *Board) Watch(ctx context.Context) error {
	w, ok := b.backend.(store.Watcher)
	if !ok {
		return nil
	}
	ch, err := w.Watch(ctx, b.log)
	if err != nil {
		return err
	}
	go func() {
		for range ch {
			if _, err := b.Reload(ctx); err != nil {
				b.log.Warn().Err(err).Msg("reload after external change")
			}
		}
	}()
	return nil
}

// Notices returns a copy of the notice collection, newest admin-created first.
func (b *Board) Notices() []notice.Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]notice.Notice(nil), b.notices...)
}

// Events returns a copy of the event collection in stored order.
func (b *Board) Events() []notice.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]notice.Event(nil), b.events...)
}

// Users returns a copy of the user collection.
func (b *Board) Users() []notice.User {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]notice.User(nil), b.users...)
}

// Notice looks up a notice by id.
func (b *Board) Notice(id int64) (notice.Notice, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, n := range b.notices {
		if n.ID == id {
			return n, true
		}
	}
	return notice.Notice{}, false
}

// AddNotice validates draft, assigns a fresh id, prepends it and persists.
func (b *Board) AddNotice(ctx context.Context, draft notice.Notice) (notice.Notice, error) {
	if err := b.check(draft); err != nil {
		return notice.Notice{}, err
	}
	b.mu.Lock()
	draft.ID = b.nextID()
	next := append([]notice.Notice{draft}, b.notices...)
	if err := b.persistLocked(ctx, store.KeyNotices, next); err != nil {
		b.mu.Unlock()
		return notice.Notice{}, err
	}
	b.notices = next
	b.mu.Unlock()

	b.log.Info().Int64("id", draft.ID).Str("title", draft.Title).Bool("urgent", draft.Urgent).Msg("notice added")
	b.broadcast(Change{Key: store.KeyNotices})
	return draft, nil
}

// AddEvent validates draft, assigns a fresh id, prepends it and persists.
func (b *Board) AddEvent(ctx context.Context, draft notice.Event) (notice.Event, error) {
	if err := b.check(draft); err != nil {
		return notice.Event{}, err
	}
	b.mu.Lock()
	draft.ID = b.nextID()
	next := append([]notice.Event{draft}, b.events...)
	if err := b.persistLocked(ctx, store.KeyEvents, next); err != nil {
		b.mu.Unlock()
		return notice.Event{}, err
	}
	b.events = next
	b.mu.Unlock()

	b.log.Info().Int64("id", draft.ID).Str("title", draft.Title).Msg("event added")
	b.broadcast(Change{Key: store.KeyEvents})
	return draft, nil
}

// UpdateNotice merges patch onto the notice with id. It returns false without
// error when no such notice exists.
func (b *Board) UpdateNotice(ctx context.Context, id int64, patch NoticePatch) (bool, error) {
	b.mu.Lock()
	idx := -1
	for i, n := range b.notices {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	merged := patch.apply(b.notices[idx])
	if err := b.check(merged); err != nil {
		b.mu.Unlock()
		return false, err
	}
	next := append([]notice.Notice(nil), b.notices...)
	next[idx] = merged
	if err := b.persistLocked(ctx, store.KeyNotices, next); err != nil {
		b.mu.Unlock()
		return false, err
	}
	b.notices = next
	b.mu.Unlock()

	b.broadcast(Change{Key: store.KeyNotices})
	return true, nil
}

// UpdateEvent merges patch onto the event with id. It returns false without
// error when no such event exists.
func (b *Board) UpdateEvent(ctx context.Context, id int64, patch EventPatch) (bool, error) {
	b.mu.Lock()
	idx := -1
	for i, e := range b.events {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	merged := patch.apply(b.events[idx])
	if err := b.check(merged); err != nil {
		b.mu.Unlock()
		return false, err
	}
	next := append([]notice.Event(nil), b.events...)
	next[idx] = merged
	if err := b.persistLocked(ctx, store.KeyEvents, next); err != nil {
		b.mu.Unlock()
		return false, err
	}
	b.events = next
	b.mu.Unlock()

	b.broadcast(Change{Key: store.KeyEvents})
	return true, nil
}

// DeleteNotice removes the notice with id. It persists and signals whether or
// not the notice existed.
func (b *Board) DeleteNotice(ctx context.Context, id int64) error {
	b.mu.Lock()
	next := make([]notice.Notice, 0, len(b.notices))
	for _, n := range b.notices {
		if n.ID != id {
			next = append(next, n)
		}
	}
	if err := b.persistLocked(ctx, store.KeyNotices, next); err != nil {
		b.mu.Unlock()
		return err
	}
	b.notices = next
	b.mu.Unlock()

	b.broadcast(Change{Key: store.KeyNotices})
	return nil
}

// DeleteEvent removes the event with id. It persists and signals whether or
// not the event existed.
func (b *Board) DeleteEvent(ctx context.Context, id int64) error {
	b.mu.Lock()
	next := make([]notice.Event, 0, len(b.events))
	for _, e := range b.events {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if err := b.persistLocked(ctx, store.KeyEvents, next); err != nil {
		b.mu.Unlock()
		return err
	}
	b.events = next
	b.mu.Unlock()

	b.broadcast(Change{Key: store.KeyEvents})
	return nil
}

// nextID returns a creation-time id strictly greater than any id handed out
// or loaded so far. Callers hold b.mu.
func (b *Board) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

func (b *Board) recomputeLastID() {
	for _, n := range b.notices {
		if n.ID > b.lastID {
			b.lastID = n.ID
		}
	}
	for _, e := range b.events {
		if e.ID > b.lastID {
			b.lastID = e.ID
		}
	}
	for _, u := range b.users {
		if u.ID > b.lastID {
			b.lastID = u.ID
		}
	}
}

// persistLocked writes v under key. Callers hold b.mu.
func (b *Board) persistLocked(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("board: encode %s: %w", key, err)
	}
	if err := b.backend.Write(ctx, key, data); err != nil {
		return fmt.Errorf("board: write %s: %w", key, err)
	}
	b.raw[key] = data
	return nil
}
