// Package ledger holds the current day's business figures and computes the
// derived totals (sales, cash given for buying, expenses, net profit).
package ledger

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownLocation is returned when a location is not in the registry.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrUnknownField is returned when a field does not apply to a location.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidCategory is returned for buying categories outside
	// DefaultCategories.
	ErrInvalidCategory = errors.New("invalid buying category")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")
)

// DateLayout is the layout of the ledger's business date.
const DateLayout = "2006-01-02"

// Default buying categories.
const (
	CategoryVeg   = "veg"
	CategoryFruit = "fruit"
)

// DefaultCategories lists the buying categories a ledger tracks. Each has its
// own export column, so no other category is accepted.
var DefaultCategories = []string{CategoryVeg, CategoryFruit}

// IsCategory reports whether category is one of DefaultCategories.
func IsCategory(category string) bool {
	for _, c := range DefaultCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Location names.
const (
	LocationUp     = "UP"
	LocationDown   = "DOWN"
	LocationThela  = "THELA"
	LocationOnline = "ONLINE"
)

// Field names, as used in the persisted JSON.
const (
	FieldInDrawer  = "inDrawer"
	FieldForBuying = "forBuying"
	FieldExpenses  = "expenses"
	FieldTotal     = "total"
)

// Kind distinguishes physical sale points from the online channel.
type Kind int

const (
	// Physical locations track drawer cash, cash for buying and expenses.
	Physical Kind = iota
	// Online locations only track a sales total.
	Online
)

// LocationSpec describes one entry of the fixed location registry.
type LocationSpec struct {
	Name string
	Kind Kind
	// SalesToggled marks the location whose drawer amount only counts
	// towards total sales when Settings.IncludeThelaSales is on.
	SalesToggled bool
}

// Fields returns the field names that apply to the location.
func (s LocationSpec) Fields() []string {
	if s.Kind == Online {
		return []string{FieldTotal}
	}
	return []string{FieldInDrawer, FieldForBuying, FieldExpenses}
}

// HasField reports whether field applies to the location.
func (s LocationSpec) HasField(field string) bool {
	for _, f := range s.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

var registry = []LocationSpec{
	{Name: LocationUp, Kind: Physical},
	{Name: LocationDown, Kind: Physical},
	{Name: LocationThela, Kind: Physical, SalesToggled: true},
	{Name: LocationOnline, Kind: Online},
}

// Registry returns the tracked locations in display order.
func Registry() []LocationSpec {
	out := make([]LocationSpec, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a location by name, ignoring case.
func Lookup(name string) (LocationSpec, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, spec := range registry {
		if spec.Name == name {
			return spec, true
		}
	}
	return LocationSpec{}, false
}

// ParseField maps user-facing field names and short aliases to field names.
func ParseField(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indrawer", "drawer", "in-drawer":
		return FieldInDrawer, nil
	case "forbuying", "buying", "for-buying":
		return FieldForBuying, nil
	case "expenses", "expense":
		return FieldExpenses, nil
	case "total":
		return FieldTotal, nil
	}
	return "", ErrUnknownField
}

// Figures holds the money fields of one location. Physical locations use
// InDrawer, ForBuying and Expenses; the online location uses Total.
type Figures struct {
	InDrawer  float64
	ForBuying float64
	Expenses  float64
	Total     float64
}

// Get returns the named field, or 0 if the field is unknown.
func (f Figures) Get(field string) float64 {
	switch field {
	case FieldInDrawer:
		return f.InDrawer
	case FieldForBuying:
		return f.ForBuying
	case FieldExpenses:
		return f.Expenses
	case FieldTotal:
		return f.Total
	}
	return 0
}

func (f *Figures) set(field string, v float64) {
	switch field {
	case FieldInDrawer:
		f.InDrawer = v
	case FieldForBuying:
		f.ForBuying = v
	case FieldExpenses:
		f.Expenses = v
	case FieldTotal:
		f.Total = v
	}
}

// Locations maps a registered location name to its figures.
type Locations map[string]Figures

// Clone returns a copy of the map.
func (l Locations) Clone() Locations {
	out := make(Locations, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

func defaultLocations() Locations {
	out := make(Locations, len(registry))
	for _, spec := range registry {
		out[spec.Name] = Figures{}
	}
	return out
}

// Buying holds per-category purchase amounts. Total is derived from
// Categories and recomputed on every change.
type Buying struct {
	Categories map[string]float64
	Total      float64
}

// Amount returns the amount of a category, 0 when absent.
func (b Buying) Amount(category string) float64 {
	return b.Categories[category]
}

// SortedCategories returns the default categories first, then any others
// in lexical order.
func (b Buying) SortedCategories() []string {
	seen := make(map[string]bool, len(DefaultCategories))
	out := make([]string, 0, len(b.Categories))
	for _, c := range DefaultCategories {
		seen[c] = true
		if _, ok := b.Categories[c]; ok {
			out = append(out, c)
		}
	}
	var rest []string
	for c := range b.Categories {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// recompute sums in a fixed order so repeated calls agree bit for bit.
func (b *Buying) recompute() {
	var total float64
	for _, c := range b.SortedCategories() {
		total += b.Categories[c]
	}
	b.Total = total
}

// Clone returns a deep copy.
func (b Buying) Clone() Buying {
	cats := make(map[string]float64, len(b.Categories))
	for k, v := range b.Categories {
		cats[k] = v
	}
	return Buying{Categories: cats, Total: b.Total}
}

func defaultBuying() Buying {
	cats := make(map[string]float64, len(DefaultCategories))
	for _, c := range DefaultCategories {
		cats[c] = 0
	}
	return Buying{Categories: cats}
}

// Settings holds ledger-level switches.
type Settings struct {
	IncludeThelaSales bool `json:"includeThelaSales"`
}

// Totals are the figures derived from a ledger.
type Totals struct {
	TotalSales     float64 `json:"totalSales"`
	TotalCashGiven float64 `json:"totalCashGiven"`
	TotalExpenses  float64 `json:"totalExpenses"`
	NetProfit      float64 `json:"netProfit"`
}

// Snapshot is a detached copy of a ledger's state.
type Snapshot struct {
	Date      string    `json:"date"`
	Buying    Buying    `json:"buying"`
	Locations Locations `json:"locations"`
	Settings  Settings  `json:"settings"`
}
