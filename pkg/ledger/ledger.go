package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Ledger holds the figures for one business day.
// The zero value is not usable; create one with New or Decode.
type Ledger struct {
	date      string
	buying    Buying
	locations Locations
	settings  Settings
}

// New creates a ledger for the given date with every figure at zero.
func New(date string) *Ledger {
	return &Ledger{
		date:      date,
		buying:    defaultBuying(),
		locations: defaultLocations(),
	}
}

// Today returns the current local date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Coerce clamps an amount to a finite, non-negative number.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseAmount parses raw user input into an amount.
// Anything that is not a finite, non-negative number becomes 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Coerce(v)
}

// Date returns the business date.
func (l *Ledger) Date() string {
	return l.date
}

// SetDate changes the business date.
func (l *Ledger) SetDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	l.date = date
	return nil
}

// SetBuying sets the amount of a buying category and recomputes the total.
func (l *Ledger) SetBuying(category string, amount float64) error {
	category = strings.ToLower(strings.TrimSpace(category))
	if !IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	l.buying.Categories[category] = Coerce(amount)
	l.buying.recompute()
	return nil
}

// SetLocationField sets one field of a location.
func (l *Ledger) SetLocationField(location, field string, amount float64) error {
	spec, ok := Lookup(location)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}
	if !spec.HasField(field) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownField, field, spec.Name)
	}

	figures := l.locations[spec.Name]
	figures.set(field, Coerce(amount))
	l.locations[spec.Name] = figures
	return nil
}

// SetIncludeThelaSales switches whether THELA's drawer counts as sales.
func (l *Ledger) SetIncludeThelaSales(include bool) {
	l.settings.IncludeThelaSales = include
}

// Buying returns a copy of the buying figures.
func (l *Ledger) Buying() Buying {
	return l.buying.Clone()
}

// Location returns the figures of a location.
func (l *Ledger) Location(name string) (Figures, bool) {
	spec, ok := Lookup(name)
	if !ok {
		return Figures{}, false
	}
	return l.locations[spec.Name], true
}

// Settings returns the ledger settings.
func (l *Ledger) Settings() Settings {
	return l.settings
}

// ComputeTotals derives the day's totals from the current figures.
func (l *Ledger) ComputeTotals() Totals {
	var t Totals
	for _, spec := range registry {
		f := l.locations[spec.Name]
		if spec.Kind == Online {
			t.TotalSales += f.Total
			continue
		}
		if !spec.SalesToggled || l.settings.IncludeThelaSales {
			t.TotalSales += f.InDrawer
		}
		t.TotalCashGiven += f.ForBuying
		t.TotalExpenses += f.Expenses
	}
	t.NetProfit = t.TotalSales - l.buying.Total - t.TotalExpenses
	return t
}

// Snapshot returns a deep copy of the ledger state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Date:      l.date,
		Buying:    l.buying.Clone(),
		Locations: l.locations.Clone(),
		Settings:  l.settings,
	}
}
