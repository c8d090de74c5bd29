// Package history keeps a capped, newest-first log of saved ledger
// snapshots and persists it through a key-value store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pigeonworks-llc/vegledger/pkg/kv"
	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
)

var (
	// ErrNotRestored is returned when Record is called before Restore.
	ErrNotRestored = errors.New("history not restored")

	// ErrAlreadyRestored is returned when Restore is called twice.
	ErrAlreadyRestored = errors.New("history already restored")

	// ErrStorage wraps failures of the underlying store.
	ErrStorage = errors.New("history storage failure")

	// ErrEmptyHistory is returned when exporting an empty log.
	ErrEmptyHistory = errors.New("no history to export")
)

// Capacity is the maximum number of entries kept.
const Capacity = 100

// Unattributed is recorded as UpdatedBy when no user is known.
const Unattributed = "unattributed"

// Data is the part of an entry captured from the ledger at save time.
type Data struct {
	Buying    ledger.Buying    `json:"buying"`
	Locations ledger.Locations `json:"locations"`
	Totals    ledger.Totals    `json:"totals"`
	Settings  ledger.Settings  `json:"settings"`
}

// Entry is one saved snapshot. Entries are never modified after creation.
type Entry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Data      Data      `json:"data"`
}

func (e Entry) clone() Entry {
	e.Data.Buying = e.Data.Buying.Clone()
	e.Data.Locations = e.Data.Locations.Clone()
	return e
}

// Store is the history log of one session.
type Store struct {
	kv      kv.Store
	now     func() time.Time
	entries []Entry
	lastID  int64
	ready   bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store backed by store. Call Restore before Record.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:  store,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted log. Missing or unreadable data leaves the log
// empty; only a repeated call is an error.
func (s *Store) Restore(ctx context.Context) error {
	if s.ready {
		return ErrAlreadyRestored
	}
	s.ready = true
	s.entries = nil

	raw, found, err := s.kv.Get(ctx, kv.KeyHistory)
	if err != nil {
		slog.Warn("Could not read history, starting empty", "error", err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("Could not parse history, starting empty", "error", err)
		return nil
	}

	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries
	for _, e := range entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}

	slog.Debug("History restored", "entries", len(entries))
	return nil
}

// Record snapshots l, prepends the entry and persists the log.
//
// When persisting fails the entry is still kept in memory and returned along
// with an error wrapping ErrStorage.
func (s *Store) Record(ctx context.Context, l *ledger.Ledger, user string) (Entry, error) {
	if !s.ready {
		return Entry{}, ErrNotRestored
	}
	if user == "" {
		user = Unattributed
	}

	now := s.now()
	snap := l.Snapshot()
	entry := Entry{
		ID:        s.nextID(now),
		Date:      snap.Date,
		Timestamp: now,
		UpdatedBy: user,
		Data: Data{
			Buying:    snap.Buying,
			Locations: snap.Locations,
			Totals:    l.ComputeTotals(),
			Settings:  snap.Settings,
		},
	}

	entries := make([]Entry, 0, min(len(s.entries)+1, Capacity))
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries

	if err := s.persist(ctx); err != nil {
		return entry.clone(), err
	}
	return entry.clone(), nil
}

// nextID returns a millisecond timestamp, bumped past the last issued ID.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("%w: failed to encode history: %v", ErrStorage, err)
	}
	if err := s.kv.Set(ctx, kv.KeyHistory, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Ready reports whether Restore has been called.
func (s *Store) Ready() bool {
	return s.ready
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Latest returns the newest entry.
func (s *Store) Latest() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0].clone(), true
}
