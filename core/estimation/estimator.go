// Package estimation converts a production schedule into a storage requirement.
//
// Runtime is split into a standard-resolution class and a high-resolution
// class, each stored at a fixed GB-per-minute rate. The rates are parameters
// so the estimator can be exercised against any rate table.
package estimation

import (
	"github.com/shopspring/decimal"

	"storage-planner/core/types"
	"storage-planner/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Rates holds the per-minute storage cost of each resolution class
type Rates struct {
	// StandardGBPerMinute is the HD storage rate (7 GB per hour by default)
	StandardGBPerMinute decimal.Decimal `json:"standard_gb_per_minute"`

	// HighResGBPerMinute is the 4K storage rate (16 GB per hour by default)
	HighResGBPerMinute decimal.Decimal `json:"high_res_gb_per_minute"`
}

// DefaultRates returns 7/60 GB/min for HD and 16/60 GB/min for 4K
func DefaultRates() Rates {
	minute := decimal.NewFromInt(60)
	return Rates{
		StandardGBPerMinute: decimal.NewFromInt(7).Div(minute),
		HighResGBPerMinute:  decimal.NewFromInt(16).Div(minute),
	}
}

// Validate checks that both rates are non-negative and that high resolution
// never costs less than standard resolution.
func (r Rates) Validate() error {
	if r.StandardGBPerMinute.IsNegative() || r.HighResGBPerMinute.IsNegative() {
		return errors.Configf("storage rates must be non-negative (standard=%s, high_res=%s)",
			r.StandardGBPerMinute, r.HighResGBPerMinute)
	}
	if r.StandardGBPerMinute.GreaterThan(r.HighResGBPerMinute) {
		return errors.Configf("standard rate %s exceeds high-res rate %s",
			r.StandardGBPerMinute, r.HighResGBPerMinute)
	}
	return nil
}

// Estimator computes storage estimates for a fixed rate table
type Estimator struct {
	rates Rates
}

// New creates an estimator after validating the rate table
func New(rates Rates) (*Estimator, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{rates: rates}, nil
}

// Default returns an estimator using DefaultRates
func Default() *Estimator {
	return &Estimator{rates: DefaultRates()}
}

// Rates returns the estimator's rate table
func (e *Estimator) Rates() Rates {
	return e.rates
}

// Estimate returns the storage needed for filmsPerYear films of minutesPerFilm
// minutes each, highResPercent of which are mastered in high resolution.
//
// Inputs are assumed pre-validated (see ValidateInputs): films and minutes
// non-negative and finite, highResPercent within [0, 100]. Estimate does not
// clamp; an out-of-range percentage yields a negative class total. Zero films
// or zero minutes yield a zero estimate.
func (e *Estimator) Estimate(filmsPerYear, minutesPerFilm, highResPercent float64) types.StorageEstimate {
	totalMinutes := decimal.NewFromFloat(filmsPerYear).Mul(decimal.NewFromFloat(minutesPerFilm))

	highResFraction := decimal.NewFromFloat(highResPercent).Div(hundred)
	standardFraction := decimal.NewFromInt(1).Sub(highResFraction)

	standard := totalMinutes.Mul(standardFraction).Mul(e.rates.StandardGBPerMinute)
	highRes := totalMinutes.Mul(highResFraction).Mul(e.rates.HighResGBPerMinute)

	return types.StorageEstimate{
		TotalGB:    standard.Add(highRes),
		StandardGB: standard,
		HighResGB:  highRes,
	}
}

// EstimateInputs validates in and estimates it
func (e *Estimator) EstimateInputs(in Inputs) (types.StorageEstimate, error) {
	if err := ValidateInputs(in); err != nil {
		return types.StorageEstimate{}, err
	}
	return e.Estimate(in.FilmsPerYear, in.MinutesPerFilm, in.HighResPercent), nil
}

// Estimate runs the default estimator
func Estimate(filmsPerYear, minutesPerFilm, highResPercent float64) types.StorageEstimate {
	return Default().Estimate(filmsPerYear, minutesPerFilm, highResPercent)
}
