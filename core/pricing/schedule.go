// Package pricing - Enterprise rate schedule
// Storage beyond the largest fixed tier is billed per GB at a rate chosen by
// the band the TOTAL requirement falls into, not the band of each extra GB.
// A requirement just over a threshold therefore moves every extra GB to the
// cheaper rate at once; the price curve has a step at each threshold.
package pricing

import (
	"github.com/shopspring/decimal"

	"storage-planner/internal/errors"
)

// RateBand applies RatePerGB to requirements strictly above ThresholdGB
type RateBand struct {
	ThresholdGB decimal.Decimal `json:"threshold_gb"`
	RatePerGB   decimal.Decimal `json:"rate_per_gb"`
}

// EnterpriseSchedule is an immutable list of rate bands sorted by strictly
// decreasing threshold, plus the rate used when no threshold is exceeded.
type EnterpriseSchedule struct {
	bands       []RateBand
	defaultRate decimal.Decimal
}

// NewEnterpriseSchedule validates and copies bands into a schedule
func NewEnterpriseSchedule(bands []RateBand, defaultRate decimal.Decimal) (*EnterpriseSchedule, error) {
	s := &EnterpriseSchedule{
		bands:       append([]RateBand(nil), bands...),
		defaultRate: defaultRate,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultSchedule is the current enterprise pricing:
//
//	> 10 TB   $0.75   per GB
//	> 5 TB    $0.8125 per GB
//	> 2.4 TB  $0.875  per GB
//	> 1.2 TB  $0.9375 per GB
//
// The default rate repeats the lowest band's rate.
func DefaultSchedule() *EnterpriseSchedule {
	return &EnterpriseSchedule{
		bands: []RateBand{
			{ThresholdGB: decimal.NewFromInt(10240), RatePerGB: decimal.RequireFromString("0.75")},
			{ThresholdGB: decimal.NewFromInt(5120), RatePerGB: decimal.RequireFromString("0.8125")},
			{ThresholdGB: decimal.RequireFromString("2457.6"), RatePerGB: decimal.RequireFromString("0.875")},
			{ThresholdGB: decimal.RequireFromString("1228.8"), RatePerGB: decimal.RequireFromString("0.9375")},
		},
		defaultRate: decimal.RequireFromString("0.9375"),
	}
}

// Validate checks the ordering and sign invariants
func (s *EnterpriseSchedule) Validate() error {
	if s.defaultRate.IsNegative() {
		return errors.Configf("default enterprise rate %s is negative", s.defaultRate)
	}
	for i, b := range s.bands {
		if b.ThresholdGB.IsNegative() {
			return errors.Configf("rate band %d: threshold %s is negative", i, b.ThresholdGB)
		}
		if b.RatePerGB.IsNegative() {
			return errors.Configf("rate band %d: rate %s is negative", i, b.RatePerGB)
		}
		if i > 0 && !b.ThresholdGB.LessThan(s.bands[i-1].ThresholdGB) {
			return errors.Configf("rate band %d: threshold %s must be below %s",
				i, b.ThresholdGB, s.bands[i-1].ThresholdGB)
		}
	}
	return nil
}

// RateFor returns the rate of the first band, scanning from the highest
// threshold down, whose threshold totalGB strictly exceeds. If none is
// exceeded the default rate applies.
func (s *EnterpriseSchedule) RateFor(totalGB decimal.Decimal) decimal.Decimal {
	for _, b := range s.bands {
		if totalGB.GreaterThan(b.ThresholdGB) {
			return b.RatePerGB
		}
	}
	return s.defaultRate
}

// Bands returns a copy of the rate bands, highest threshold first
func (s *EnterpriseSchedule) Bands() []RateBand {
	return append([]RateBand(nil), s.bands...)
}

// DefaultRate returns the fallback rate
func (s *EnterpriseSchedule) DefaultRate() decimal.Decimal {
	return s.defaultRate
}
