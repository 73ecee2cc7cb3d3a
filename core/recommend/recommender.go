// Package recommend maps a storage requirement onto a tier catalog.
//
// The smallest fixed tier that covers the requirement wins. When none does,
// an enterprise plan is synthesized on top of the largest tier, with the
// extra storage billed at the schedule's rate for the total requirement.
package recommend

import (
	"github.com/shopspring/decimal"

	"storage-planner/core/catalog"
	"storage-planner/core/pricing"
	"storage-planner/core/types"
	"storage-planner/core/units"
	"storage-planner/internal/errors"
)

// DefaultTemplate labels enterprise plans when no catalog template is given
func DefaultTemplate() types.EnterpriseTemplate {
	return types.EnterpriseTemplate{
		Key:  "enterprise",
		Name: "Enterprise",
		Features: []string{
			"{storage} custom storage",
			"{seats} users",
			"Everything in {base} plan",
			"Dedicated account manager",
			"Custom integrations",
			"Priority support",
		},
	}
}

// Recommender selects tiers against one enterprise schedule
type Recommender struct {
	schedule *pricing.EnterpriseSchedule
	template types.EnterpriseTemplate
}

// New creates a recommender. A nil schedule means pricing.DefaultSchedule.
func New(schedule *pricing.EnterpriseSchedule, template types.EnterpriseTemplate) *Recommender {
	if schedule == nil {
		schedule = pricing.DefaultSchedule()
	}
	if template.Key == "" {
		template.Key = "enterprise"
	}
	return &Recommender{schedule: schedule, template: template}
}

// Default returns a recommender with the default schedule and template
func Default() *Recommender {
	return New(pricing.DefaultSchedule(), DefaultTemplate())
}

// ForPeriod builds a recommender from a catalog's schedule and template for
// period, and returns the period's tiers alongside it
func ForPeriod(c *catalog.Catalog, period types.BillingPeriod) (*Recommender, []types.Tier, error) {
	tiers, err := c.TiersFor(period)
	if err != nil {
		return nil, nil, err
	}
	schedule, err := c.ScheduleFor(period)
	if err != nil {
		return nil, nil, err
	}
	return New(schedule, c.Enterprise()), tiers, nil
}

// Schedule returns the enterprise schedule in use
func (r *Recommender) Schedule() *pricing.EnterpriseSchedule {
	return r.schedule
}

// Recommend returns the first tier in catalog order whose capacity is at
// least requiredGB. Tiers with equal capacity resolve to the one listed
// first; name and price play no part.
//
// If no tier fits, the result is an EnterpriseTier based on the tier with
// the greatest capacity (the first such tier on ties).
//
// tiers must be non-empty and ordered by non-decreasing capacity; an empty or
// unordered list is a CONFIG_ERROR. A negative requirement is an INPUT_ERROR.
func (r *Recommender) Recommend(requiredGB decimal.Decimal, tiers []types.Tier) (types.Recommendation, error) {
	if len(tiers) == 0 {
		return nil, errors.Config("no tiers to recommend from")
	}
	if requiredGB.IsNegative() {
		return nil, errors.Inputf("required storage %s GB is negative", requiredGB).
			WithContext("required_gb", requiredGB.String())
	}
	if err := catalog.CheckCapacityOrder(tiers); err != nil {
		return nil, err
	}

	for _, t := range tiers {
		if t.Fits(requiredGB) {
			return types.FixedTier{Tier: t.Clone()}, nil
		}
	}

	return types.EnterpriseTier{EnterprisePlan: r.EnterprisePlan(requiredGB, Largest(tiers))}, nil
}

// EnterprisePlan prices requiredGB on top of base. requiredGB is expected to
// exceed base's capacity.
func (r *Recommender) EnterprisePlan(requiredGB decimal.Decimal, base types.Tier) types.EnterprisePlan {
	extra := requiredGB.Sub(base.CapacityGB)
	rate := r.schedule.RateFor(requiredGB)
	additional := extra.Mul(rate)
	seats := types.Seats{Count: base.Seats.Count, OrMore: true}

	return types.EnterprisePlan{
		Tier: types.Tier{
			Key:         r.template.Key,
			Name:        r.template.Name,
			MonthlyCost: base.MonthlyCost.Add(additional),
			CapacityGB:  requiredGB,
			Seats:       seats,
			Features:    r.template.RenderFeatures(units.FormatStorage(requiredGB), seats.String(), base.Name),
		},
		BaseTier:       base.Key,
		BaseCost:       base.MonthlyCost,
		ExtraGB:        extra,
		Rate:           rate,
		AdditionalCost: additional,
	}
}

// Largest returns the tier with the greatest capacity, preferring the first
// on ties. It does not rely on catalog order. tiers must be non-empty.
func Largest(tiers []types.Tier) types.Tier {
	best := tiers[0]
	for _, t := range tiers[1:] {
		if t.CapacityGB.GreaterThan(best.CapacityGB) {
			best = t
		}
	}
	return best.Clone()
}

// Recommend runs the default recommender
func Recommend(requiredGB decimal.Decimal, tiers []types.Tier) (types.Recommendation, error) {
	return Default().Recommend(requiredGB, tiers)
}
