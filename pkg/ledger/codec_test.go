package ledger

import (
	"encoding/json"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := sampleLedger(t)
	l.SetIncludeThelaSales(true)

	data, err := l.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	restored, err := Decode(data, "2000-01-01")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if restored.Date() != "2024-01-15" {
		t.Errorf("Date() = %q, expected 2024-01-15", restored.Date())
	}
	if restored.ComputeTotals() != l.ComputeTotals() {
		t.Errorf("totals differ after round trip: %+v vs %+v", restored.ComputeTotals(), l.ComputeTotals())
	}
	for _, spec := range Registry() {
		want, _ := l.Location(spec.Name)
		got, _ := restored.Location(spec.Name)
		if got != want {
			t.Errorf("%s = %+v, expected %+v", spec.Name, got, want)
		}
	}
}

func TestEncodeShape(t *testing.T) {
	l := sampleLedger(t)

	data, err := l.Encode()
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Buying    map[string]float64        `json:"buying"`
		Locations map[string]map[string]any `json:"locations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unexpected document: %v", err)
	}

	if doc.Buying["total"] != 150 {
		t.Errorf("buying.total = %v, expected 150", doc.Buying["total"])
	}

	online, ok := doc.Locations["ONLINE"]
	if !ok {
		t.Fatalf("locations.ONLINE missing: %s", data)
	}
	if len(online) != 1 || online["total"] != 800.0 {
		t.Errorf("locations.ONLINE = %v, expected only total=800", online)
	}

	up, ok := doc.Locations["UP"]
	if !ok {
		t.Fatalf("locations.UP missing: %s", data)
	}
	if _, hasTotal := up["total"]; hasTotal {
		t.Errorf("locations.UP should not carry total: %v", up)
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		date    string
		veg     float64
		total   float64
		upDraw  float64
		include bool
	}{
		{
			name: "empty document",
			doc:  `{}`,
			date: "2024-03-01",
		},
		{
			name:   "older document without settings",
			doc:    `{"date":"2024-01-10","buying":{"veg":10,"fruit":5,"total":15},"locations":{"UP":{"inDrawer":300}}}`,
			date:   "2024-01-10",
			veg:    10,
			total:  15,
			upDraw: 300,
		},
		{
			name:    "stored total is ignored",
			doc:     `{"buying":{"veg":10,"fruit":5,"total":999},"settings":{"includeThelaSales":true}}`,
			date:    "2024-03-01",
			veg:     10,
			total:   15,
			include: true,
		},
		{
			name:   "invalid amounts coerce to zero",
			doc:    `{"buying":{"veg":"abc","fruit":-5},"locations":{"UP":{"inDrawer":"250"}}}`,
			date:   "2024-03-01",
			upDraw: 250,
		},
		{
			name:  "unknown category is dropped",
			doc:   `{"buying":{"veg":10,"herbs":7}}`,
			date:  "2024-03-01",
			veg:   10,
			total: 10,
		},
		{
			name: "unknown location and bad date are dropped",
			doc:  `{"date":"yesterday","locations":{"SIDE":{"inDrawer":1}}}`,
			date: "2024-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode([]byte(tt.doc), "2024-03-01")
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}

			if l.Date() != tt.date {
				t.Errorf("Date() = %q, expected %q", l.Date(), tt.date)
			}
			b := l.Buying()
			if b.Amount(CategoryVeg) != tt.veg {
				t.Errorf("veg = %v, expected %v", b.Amount(CategoryVeg), tt.veg)
			}
			if b.Total != tt.total {
				t.Errorf("buying total = %v, expected %v", b.Total, tt.total)
			}
			if _, ok := b.Categories[CategoryFruit]; !ok {
				t.Error("default fruit category missing")
			}
			up, _ := l.Location(LocationUp)
			if up.InDrawer != tt.upDraw {
				t.Errorf("UP.inDrawer = %v, expected %v", up.InDrawer, tt.upDraw)
			}
			if l.Settings().IncludeThelaSales != tt.include {
				t.Errorf("includeThelaSales = %v, expected %v", l.Settings().IncludeThelaSales, tt.include)
			}
			for _, spec := range Registry() {
				if _, ok := l.Location(spec.Name); !ok {
					t.Errorf("location %s missing", spec.Name)
				}
			}
		})
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	for _, doc := range []string{`not json`, `{"locations":"UP"}`, `[]`} {
		if _, err := Decode([]byte(doc), "2024-03-01"); err == nil {
			t.Errorf("Decode(%q) expected error", doc)
		}
	}
}
