package portfolio

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// InstrumentType classifies instruments.
type InstrumentType string

const (
	Stock InstrumentType = "stock"
	ETF   InstrumentType = "etf"
	Index InstrumentType = "index"
)

// Instrument is the reference data of a tradable code.
type Instrument struct {
	Code      string
	Name      string
	Type      InstrumentType
	Sector    string
	Price     Money // reference price
	PrevClose Money
}

// Change returns the price change since the previous close.
func (i Instrument) Change() Money { return i.Price.Sub(i.PrevClose) }

// ChangePercent returns Change relative to the previous close.
func (i Instrument) ChangePercent() Percent { return i.Change().PercentOf(i.PrevClose) }

// InstrumentLookup resolves instrument codes. It is consulted by Ledger.Buy.
type InstrumentLookup interface {
	// Instrument returns the instrument for code, ok is false if unknown.
	Instrument(code string) (Instrument, bool)
}

// Catalog is a static, read-only InstrumentLookup.
type Catalog struct {
	byCode map[string]Instrument
	codes  []string // sorted
}

// NewCatalog creates a catalog. Later instruments replace earlier ones with the same code.
func NewCatalog(instruments ...Instrument) *Catalog {
	c := &Catalog{byCode: make(map[string]Instrument, len(instruments))}
	for _, in := range instruments {
		if _, exists := c.byCode[in.Code]; !exists {
			c.codes = append(c.codes, in.Code)
		}
		c.byCode[in.Code] = in
	}
	slices.Sort(c.codes)
	return c
}

//go:embed instruments.yaml
var defaultInstruments []byte

// DefaultCatalog returns the built-in catalog of A-share instruments, priced in CNY.
func DefaultCatalog() *Catalog {
	c, err := DecodeCatalog(bytes.NewReader(defaultInstruments), DefaultCurrency)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded instruments: %v", err))
	}
	return c
}

// DecodeCatalog reads a YAML list of instruments.
func DecodeCatalog(r io.Reader, currency string) (*Catalog, error) {
	var entries []struct {
		Code      string  `yaml:"code"`
		Name      string  `yaml:"name"`
		Type      string  `yaml:"type"`
		Sector    string  `yaml:"sector"`
		Price     float64 `yaml:"price"`
		PrevClose float64 `yaml:"prevClose"`
	}
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding instruments: %w", err)
	}
	instruments := make([]Instrument, 0, len(entries))
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("instrument #%d has no code", i+1)
		}
		if e.Price <= 0 {
			return nil, fmt.Errorf("instrument %s: price must be positive, got %v", e.Code, e.Price)
		}
		switch t := InstrumentType(e.Type); t {
		case Stock, ETF, Index:
		default:
			return nil, fmt.Errorf("instrument %s: unknown type %q", e.Code, e.Type)
		}
		instruments = append(instruments, Instrument{
			Code:      e.Code,
			Name:      e.Name,
			Type:      InstrumentType(e.Type),
			Sector:    e.Sector,
			Price:     M(e.Price, currency),
			PrevClose: M(e.PrevClose, currency),
		})
	}
	return NewCatalog(instruments...), nil
}

// Instrument implements InstrumentLookup.
func (c *Catalog) Instrument(code string) (Instrument, bool) {
	in, ok := c.byCode[code]
	return in, ok
}

// Len returns the number of instruments.
func (c *Catalog) Len() int { return len(c.codes) }

// All iterates over instruments ordered by code.
func (c *Catalog) All() iter.Seq[Instrument] {
	return func(yield func(Instrument) bool) {
		for _, code := range c.codes {
			if !yield(c.byCode[code]) {
				return
			}
		}
	}
}

// Search returns the instruments whose code contains query, or whose name contains
// it ignoring case. A blank query matches nothing.
func (c *Catalog) Search(query string) []Instrument {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	q := fold.String(query)
	var res []Instrument
	for in := range c.All() {
		if strings.Contains(in.Code, query) || strings.Contains(fold.String(in.Name), q) {
			res = append(res, in)
		}
	}
	return res
}
