// Package types - Plan catalog types
package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storage-planner/internal/errors"
)

// BillingPeriod selects which catalog of tiers is active
type BillingPeriod string

const (
	Monthly BillingPeriod = "monthly"
	Annual  BillingPeriod = "annual"
)

// DefaultBillingPeriod is the period shown before a caller picks one
const DefaultBillingPeriod = Annual

// BillingPeriods returns the closed set of billing periods in display order
func BillingPeriods() []BillingPeriod {
	return []BillingPeriod{Monthly, Annual}
}

// Valid reports whether p is a known period
func (p BillingPeriod) Valid() bool {
	return p == Monthly || p == Annual
}

// String returns the string representation
func (p BillingPeriod) String() string {
	return string(p)
}

// ParseBillingPeriod converts an identifier into a BillingPeriod.
// Anything outside {monthly, annual} is a NOT_FOUND error.
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	p := BillingPeriod(s)
	if !p.Valid() {
		return "", errors.NotFound("billing period", s)
	}
	return p, nil
}

// Currency represents a currency code
type Currency string

const CurrencyUSD Currency = "USD"

// Seats is a user-seat allowance. OrMore marks an open-ended allowance ("5+").
type Seats struct {
	Count  int  `json:"count" validate:"min=1"`
	OrMore bool `json:"or_more,omitempty"`
}

// String renders "5" or "5+"
func (s Seats) String() string {
	if s.OrMore {
		return strconv.Itoa(s.Count) + "+"
	}
	return strconv.Itoa(s.Count)
}

// MarshalJSON emits a bare number for fixed counts and "N+" for open ones
func (s Seats) MarshalJSON() ([]byte, error) {
	if s.OrMore {
		return json.Marshal(s.String())
	}
	return json.Marshal(s.Count)
}

// Tier is a fixed-price subscription tier. Values are treated as immutable;
// use Clone before handing a tier to code that may modify Features.
type Tier struct {
	// Key is the stable identifier within a period (e.g. "business")
	Key string `json:"key" validate:"required"`

	// Name is the display name
	Name string `json:"name" validate:"required"`

	// MonthlyCost is the price per month in currency units
	MonthlyCost decimal.Decimal `json:"monthly_cost"`

	// CapacityGB is the storage allowance in gigabytes
	CapacityGB decimal.Decimal `json:"capacity_gb"`

	// Seats is the user allowance
	Seats Seats `json:"seats"`

	// Features is display-only copy, in order
	Features []string `json:"features"`
}

// Clone returns a copy that shares no mutable state with t
func (t Tier) Clone() Tier {
	c := t
	if t.Features != nil {
		c.Features = append([]string(nil), t.Features...)
	}
	return c
}

// Fits reports whether the tier's capacity covers requiredGB
func (t Tier) Fits(requiredGB decimal.Decimal) bool {
	return t.CapacityGB.GreaterThanOrEqual(requiredGB)
}

// EnterpriseTemplate labels synthesized enterprise plans. Feature strings
// may contain {storage}, {seats} and {base} placeholders.
type EnterpriseTemplate struct {
	Key      string   `json:"key"`
	Name     string   `json:"name" validate:"required"`
	Features []string `json:"features"`
}

// RenderFeatures substitutes the placeholders in each feature string
func (t EnterpriseTemplate) RenderFeatures(storage, seats, base string) []string {
	r := strings.NewReplacer("{storage}", storage, "{seats}", seats, "{base}", base)
	out := make([]string, len(t.Features))
	for i, f := range t.Features {
		out[i] = r.Replace(f)
	}
	return out
}
