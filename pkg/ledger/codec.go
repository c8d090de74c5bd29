package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wireLedger mirrors the persisted ledger document. Every field is optional so
// that documents written by older versions still decode.
type wireLedger struct {
	Date      *string                               `json:"date"`
	Buying    map[string]json.RawMessage            `json:"buying"`
	Locations map[string]map[string]json.RawMessage `json:"locations"`
	Settings  *wireSettings                         `json:"settings"`
}

type wireSettings struct {
	IncludeThelaSales *bool `json:"includeThelaSales"`
}

// Encode serializes the ledger as JSON.
func (l *Ledger) Encode() ([]byte, error) {
	data, err := json.Marshal(l.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode restores a ledger from JSON. Fields missing from data keep the
// defaults of New(date); unknown locations, categories and fields are ignored
// and bad amounts become 0.
func Decode(data []byte, date string) (*Ledger, error) {
	var w wireLedger
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}

	l := New(date)
	if w.Date != nil {
		// An unparsable date keeps the default.
		_ = l.SetDate(*w.Date)
	}
	fillBuying(&l.buying, w.Buying)
	fillLocations(l.locations, w.Locations)
	if w.Settings != nil && w.Settings.IncludeThelaSales != nil {
		l.settings.IncludeThelaSales = *w.Settings.IncludeThelaSales
	}
	return l, nil
}

// MarshalJSON flattens categories and total into one object.
func (b Buying) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, len(b.Categories)+1)
	for k, v := range b.Categories {
		m[k] = v
	}
	m[FieldTotal] = b.Total
	return json.Marshal(m)
}

// UnmarshalJSON reads categories and recomputes the total; a stored total is
// ignored.
func (b *Buying) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Categories = make(map[string]float64, len(raw))
	fillBuying(b, raw)
	return nil
}

// MarshalJSON writes only the fields that apply to each location kind.
func (l Locations) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]float64, len(l))
	for _, spec := range registry {
		f, ok := l[spec.Name]
		if !ok {
			continue
		}
		fields := make(map[string]float64)
		for _, name := range spec.Fields() {
			fields[name] = f.Get(name)
		}
		out[spec.Name] = fields
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps registered locations only.
func (l *Locations) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = make(Locations, len(raw))
	fillLocations(*l, raw)
	return nil
}

func fillBuying(b *Buying, raw map[string]json.RawMessage) {
	for k, v := range raw {
		k = strings.ToLower(k)
		if !IsCategory(k) {
			continue
		}
		b.Categories[k] = rawAmount(v)
	}
	b.recompute()
}

func fillLocations(dst Locations, raw map[string]map[string]json.RawMessage) {
	for name, fields := range raw {
		spec, ok := Lookup(name)
		if !ok {
			continue
		}
		f := dst[spec.Name]
		for _, field := range spec.Fields() {
			if v, ok := fields[field]; ok {
				f.set(field, rawAmount(v))
			}
		}
		dst[spec.Name] = f
	}
}

// rawAmount accepts a JSON number or a numeric string.
func rawAmount(raw json.RawMessage) float64 {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return Coerce(v)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseAmount(s)
	}
	return 0
}
