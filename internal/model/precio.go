package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Precio is a currency amount that tolerates both numeric and textual
// encodings on the wire ("12.50", "12,50", "12.50 €", 12.5). Historical
// catalog rows stored the price as free text with a currency symbol, so
// every entry point normalizes through this type. Unparseable values
// collapse to 0 instead of failing the whole cart or listing.
type Precio struct {
	decimal.Decimal
}

// NewPrecio wraps a decimal as a Precio.
func NewPrecio(d decimal.Decimal) Precio { return Precio{Decimal: d} }

// PrecioFromFloat builds a Precio from a float (test/seed convenience).
func PrecioFromFloat(f float64) Precio {
	return Precio{Decimal: decimal.NewFromFloat(f)}
}

// PrecioFromString normalizes a textual price. Currency symbols and
// whitespace are stripped; a decimal comma is accepted when no point is
// present. Returns 0 when nothing parseable remains.
func PrecioFromString(s string) Precio {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', ' ', ' ':
			return -1
		}
		return r
	}, s)
	if !strings.Contains(clean, ".") {
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Precio{Decimal: decimal.Zero}
	}
	return Precio{Decimal: d}
}

// UnmarshalJSON accepts a JSON number or a JSON string with optional
// currency symbol. Parse failures yield 0, never an error.
func (p *Precio) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		p.Decimal = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			p.Decimal = decimal.Zero
			return nil
		}
		*p = PrecioFromString(str)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.Decimal = decimal.Zero
		return nil
	}
	p.Decimal = d
	return nil
}

// MarshalJSON always emits the normalized numeric form.
func (p Precio) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// Scan implements sql.Scanner, tolerating textual DB representations.
func (p *Precio) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*p = PrecioFromString(v)
		return nil
	case []byte:
		*p = PrecioFromString(string(v))
		return nil
	default:
		return p.Decimal.Scan(src)
	}
}

// Value implements driver.Valuer.
func (p Precio) Value() (driver.Value, error) {
	return p.Decimal.Value()
}

// PorCantidad returns precio × cantidad as a decimal.
func (p Precio) PorCantidad(cantidad int) decimal.Decimal {
	return p.Decimal.Mul(decimal.NewFromInt(int64(cantidad)))
}
