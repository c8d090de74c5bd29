// Package session ties an authenticated user to the current ledger and its
// history, persisting both through a key-value store.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pigeonworks-llc/vegledger/pkg/auth"
	"github.com/pigeonworks-llc/vegledger/pkg/history"
	"github.com/pigeonworks-llc/vegledger/pkg/kv"
	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat parses "csv" or "xlsx".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatXLSX:
		return ExportFormat(s), nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// Session is one operator's working state.
type Session struct {
	store   kv.Store
	user    auth.User
	ledger  *ledger.Ledger
	history *history.Store
}

// Open restores the ledger and history for user. A missing or unreadable
// ledger starts fresh on today.
func Open(ctx context.Context, store kv.Store, user auth.User, today string, opts ...history.Option) (*Session, error) {
	s := &Session{
		store:   store,
		user:    user,
		ledger:  loadLedger(ctx, store, today),
		history: history.New(store, opts...),
	}

	if err := s.history.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore history: %w", err)
	}

	slog.Debug("Session opened",
		"user", user.Username,
		"role", user.Role,
		"date", s.ledger.Date(),
		"history_entries", s.history.Len(),
	)
	return s, nil
}

func loadLedger(ctx context.Context, store kv.Store, today string) *ledger.Ledger {
	raw, found, err := store.Get(ctx, kv.KeyLedger)
	if err != nil {
		slog.Warn("Could not read ledger, starting fresh", "error", err)
		return ledger.New(today)
	}
	if !found {
		return ledger.New(today)
	}

	l, err := ledger.Decode([]byte(raw), today)
	if err != nil {
		slog.Warn("Could not parse ledger, starting fresh", "error", err)
		return ledger.New(today)
	}
	return l
}

// Close closes the store if it supports closing.
func (s *Session) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// User returns the session's user.
func (s *Session) User() auth.User {
	return s.user
}

// Snapshot returns a copy of the current ledger.
func (s *Session) Snapshot() ledger.Snapshot {
	return s.ledger.Snapshot()
}

// Totals computes the current totals.
func (s *Session) Totals() ledger.Totals {
	return s.ledger.ComputeTotals()
}

// History returns the saved entries, newest first.
func (s *Session) History() []history.Entry {
	return s.history.Entries()
}

// edit runs fn against the ledger for editors only, then persists the ledger.
func (s *Session) edit(ctx context.Context, fn func(l *ledger.Ledger) error) error {
	if err := auth.RequireEditor(s.user); err != nil {
		return err
	}
	if err := fn(s.ledger); err != nil {
		return err
	}
	return s.persistLedger(ctx)
}

func (s *Session) persistLedger(ctx context.Context) error {
	data, err := s.ledger.Encode()
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, kv.KeyLedger, string(data)); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}

// SetBuying sets a buying category.
func (s *Session) SetBuying(ctx context.Context, category string, amount float64) error {
	return s.edit(ctx, func(l *ledger.Ledger) error {
		return l.SetBuying(category, amount)
	})
}

// SetLocationField sets one figure of a location.
func (s *Session) SetLocationField(ctx context.Context, location, field string, amount float64) error {
	return s.edit(ctx, func(l *ledger.Ledger) error {
		return l.SetLocationField(location, field, amount)
	})
}

// SetIncludeThelaSales sets the THELA sales toggle.
func (s *Session) SetIncludeThelaSales(ctx context.Context, include bool) error {
	return s.edit(ctx, func(l *ledger.Ledger) error {
		l.SetIncludeThelaSales(include)
		return nil
	})
}

// SetDate changes the business date.
func (s *Session) SetDate(ctx context.Context, date string) error {
	return s.edit(ctx, func(l *ledger.Ledger) error {
		return l.SetDate(date)
	})
}

// Save persists the ledger and records a history entry. The entry is
// recorded even when persisting the ledger fails; the first error is
// returned.
func (s *Session) Save(ctx context.Context) (history.Entry, error) {
	if err := auth.RequireEditor(s.user); err != nil {
		return history.Entry{}, err
	}

	ledgerErr := s.persistLedger(ctx)
	entry, err := s.history.Record(ctx, s.ledger, s.user.Username)
	if ledgerErr != nil {
		return entry, ledgerErr
	}
	return entry, err
}

// Export writes the history in the given format.
func (s *Session) Export(w io.Writer, format ExportFormat) error {
	if err := auth.RequireEditor(s.user); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return s.history.ExportCSV(w)
	case FormatXLSX:
		return s.history.ExportXLSX(w)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}
