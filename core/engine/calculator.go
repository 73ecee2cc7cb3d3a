// Package engine provides the plan calculator.
// CLI is a thin wrapper around this engine.
package engine

import (
	"go.uber.org/zap"

	"storage-planner/core/catalog"
	"storage-planner/core/estimation"
	"storage-planner/core/recommend"
	"storage-planner/core/types"
	"storage-planner/internal/logging"
)

// Version is reported in result metadata
const Version = "0.1.0"

// Calculator runs inputs through estimation and recommendation against one
// catalog. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	catalog   *catalog.Catalog
	estimator *estimation.Estimator
}

// New creates a calculator. Nil arguments select the embedded catalog and
// the default storage rates.
func New(c *catalog.Catalog, e *estimation.Estimator) *Calculator {
	if c == nil {
		c = catalog.Default()
	}
	if e == nil {
		e = estimation.Default()
	}
	return &Calculator{catalog: c, estimator: e}
}

// Catalog returns the catalog in use
func (c *Calculator) Catalog() *catalog.Catalog {
	return c.catalog
}

// Request is one calculation. An empty Period means DefaultBillingPeriod.
type Request struct {
	Inputs estimation.Inputs   `json:"inputs"`
	Period types.BillingPeriod `json:"period"`
}

// Result is everything a caller needs to render a plan comparison
type Result struct {
	// Inputs echoes the request
	Inputs estimation.Inputs `json:"inputs"`

	// Period is the billing period the tiers belong to
	Period types.BillingPeriod `json:"period"`

	// Complete is false when films or minutes is zero; there is then no
	// recommendation, but Tiers is still populated
	Complete bool `json:"complete"`

	// Estimate is the storage requirement
	Estimate types.StorageEstimate `json:"estimate"`

	// Recommendation is nil when Complete is false
	Recommendation types.Recommendation `json:"recommendation,omitempty"`

	// Tiers is the full tier list of Period in catalog order
	Tiers []types.Tier `json:"tiers"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	CatalogVersion string         `json:"catalog_version"`
	CatalogDigest  string         `json:"catalog_digest"`
	Currency       types.Currency `json:"currency"`
	Version        string         `json:"version"`
}

// IsRecommended reports whether tierKey is the recommended fixed tier
func (r *Result) IsRecommended(tierKey string) bool {
	fixed, ok := r.Recommendation.(types.FixedTier)
	return ok && fixed.Key == tierKey
}

// Calculate validates the inputs, estimates storage, and recommends a plan.
// Invalid inputs are an INPUT_ERROR and an unknown period is NOT_FOUND.
func (c *Calculator) Calculate(req Request) (*Result, error) {
	period := req.Period
	if period == "" {
		period = types.DefaultBillingPeriod
	}

	if err := estimation.ValidateInputs(req.Inputs); err != nil {
		return nil, err
	}

	recommender, tiers, err := recommend.ForPeriod(c.catalog, period)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Inputs: req.Inputs,
		Period: period,
		Tiers:  tiers,
		Metadata: Metadata{
			CatalogVersion: c.catalog.Version(),
			CatalogDigest:  c.catalog.Digest().String(),
			Currency:       c.catalog.Currency(),
			Version:        Version,
		},
	}

	if !req.Inputs.Complete() {
		logging.Debug("inputs incomplete, skipping recommendation",
			zap.Float64("films_per_year", req.Inputs.FilmsPerYear),
			zap.Float64("minutes_per_film", req.Inputs.MinutesPerFilm),
		)
		return result, nil
	}

	result.Complete = true
	result.Estimate = c.estimator.Estimate(req.Inputs.FilmsPerYear, req.Inputs.MinutesPerFilm, req.Inputs.HighResPercent)

	rec, err := recommender.Recommend(result.Estimate.TotalGB, tiers)
	if err != nil {
		return nil, err
	}
	result.Recommendation = rec

	fields := []zap.Field{
		zap.String("period", string(period)),
		zap.String("required_gb", result.Estimate.TotalGB.StringFixed(2)),
		zap.String("plan", rec.Plan().Name),
		zap.String("cost", rec.Plan().MonthlyCost.String()),
	}
	if ent, ok := rec.(types.EnterpriseTier); ok {
		fields = append(fields,
			zap.String("base_tier", ent.BaseTier),
			zap.String("rate", ent.Rate.String()),
		)
	}
	logging.Debug("plan recommended", fields...)

	return result, nil
}
