// Package catalog - Authoritative plan catalog
// Holds the fixed-price tiers of each billing period and the enterprise
// rate schedule that prices requirements beyond them. A Catalog is built
// once, validated, and never mutated; lookups hand out copies.
package catalog

import (
	"sort"

	"storage-planner/core/pricing"
	"storage-planner/core/types"
	"storage-planner/internal/errors"
)

// PeriodSpec is the raw content of one billing period
type PeriodSpec struct {
	Tiers    []types.Tier
	Schedule *pricing.EnterpriseSchedule
}

// Spec is the raw content a Catalog is built from
type Spec struct {
	Version    string
	Currency   types.Currency
	Periods    map[types.BillingPeriod]PeriodSpec
	Enterprise types.EnterpriseTemplate
}

// Catalog is the validated, read-only plan catalog
type Catalog struct {
	version    string
	currency   types.Currency
	periods    map[types.BillingPeriod]PeriodSpec
	enterprise types.EnterpriseTemplate
	digest     ContentHash
}

// New validates spec and builds a Catalog from a deep copy of it
func New(spec Spec) (*Catalog, error) {
	if errs := Validate(spec, DefaultValidationRules()); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return nil, errors.Wrapf(errors.TypeConfig, errs[0], "catalog has %d validation errors", len(errs)).
			WithContext("violations", msgs)
	}

	c := &Catalog{
		version:    spec.Version,
		currency:   spec.Currency,
		periods:    make(map[types.BillingPeriod]PeriodSpec, len(spec.Periods)),
		enterprise: cloneTemplate(spec.Enterprise),
	}
	if c.currency == "" {
		c.currency = types.CurrencyUSD
	}
	for period, ps := range spec.Periods {
		c.periods[period] = PeriodSpec{
			Tiers:    cloneTiers(ps.Tiers),
			Schedule: ps.Schedule,
		}
	}
	c.digest = computeDigest(c)
	return c, nil
}

// TiersFor returns the tiers of a billing period in catalog order
// (non-decreasing capacity). The result is a copy.
func (c *Catalog) TiersFor(period types.BillingPeriod) ([]types.Tier, error) {
	ps, err := c.period(period)
	if err != nil {
		return nil, err
	}
	return cloneTiers(ps.Tiers), nil
}

// ScheduleFor returns the enterprise rate schedule of a billing period
func (c *Catalog) ScheduleFor(period types.BillingPeriod) (*pricing.EnterpriseSchedule, error) {
	ps, err := c.period(period)
	if err != nil {
		return nil, err
	}
	return ps.Schedule, nil
}

// Tier returns one tier by key
func (c *Catalog) Tier(period types.BillingPeriod, key string) (types.Tier, error) {
	ps, err := c.period(period)
	if err != nil {
		return types.Tier{}, err
	}
	for _, t := range ps.Tiers {
		if t.Key == key {
			return t.Clone(), nil
		}
	}
	return types.Tier{}, errors.NotFound("tier", string(period)+"/"+key)
}

// Enterprise returns the enterprise plan template
func (c *Catalog) Enterprise() types.EnterpriseTemplate {
	return cloneTemplate(c.enterprise)
}

// Periods returns the billing periods present, in display order
func (c *Catalog) Periods() []types.BillingPeriod {
	var out []types.BillingPeriod
	for _, p := range types.BillingPeriods() {
		if _, ok := c.periods[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Version returns the catalog version string
func (c *Catalog) Version() string {
	return c.version
}

// Digest identifies the pricing content. Two catalogs with equal digests
// produce identical results.
func (c *Catalog) Digest() ContentHash {
	return c.digest
}

// Currency returns the catalog currency
func (c *Catalog) Currency() types.Currency {
	return c.currency
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{TiersByPeriod: make(map[types.BillingPeriod]int)}
	keys := make(map[string]struct{})
	for period, ps := range c.periods {
		stats.TiersByPeriod[period] = len(ps.Tiers)
		stats.Total += len(ps.Tiers)
		for _, t := range ps.Tiers {
			keys[t.Key] = struct{}{}
		}
	}
	for k := range keys {
		stats.DistinctKeys = append(stats.DistinctKeys, k)
	}
	sort.Strings(stats.DistinctKeys)
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Total         int
	TiersByPeriod map[types.BillingPeriod]int
	DistinctKeys  []string
}

func (c *Catalog) period(period types.BillingPeriod) (PeriodSpec, error) {
	if !period.Valid() {
		return PeriodSpec{}, errors.NotFound("billing period", string(period))
	}
	ps, ok := c.periods[period]
	if !ok {
		return PeriodSpec{}, errors.NotFound("billing period", string(period))
	}
	return ps, nil
}

func cloneTiers(in []types.Tier) []types.Tier {
	out := make([]types.Tier, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneTemplate(t types.EnterpriseTemplate) types.EnterpriseTemplate {
	t.Features = append([]string(nil), t.Features...)
	return t
}
