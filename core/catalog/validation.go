// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"storage-planner/core/types"
	"storage-planner/internal/errors"
)

var validate = validator.New()

// ValidationRule checks the content of one billing period
type ValidationRule func(types.BillingPeriod, PeriodSpec) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateNotEmpty,
		validateTierFields,
		validateUniqueKeys,
		validateCapacityOrder,
		validateSchedule,
	}
}

// Validate checks a catalog spec against validation rules. Every known
// billing period must be present and no unknown period may appear.
func Validate(spec Spec, rules []ValidationRule) []error {
	var errs []error

	for period := range spec.Periods {
		if !period.Valid() {
			errs = append(errs, errors.Configf("unknown billing period %q", period))
		}
	}

	if err := validate.Struct(spec.Enterprise); err != nil {
		errs = append(errs, errors.Wrap(errors.TypeConfig, "enterprise template", err))
	}

	for _, period := range types.BillingPeriods() {
		ps, ok := spec.Periods[period]
		if !ok {
			errs = append(errs, errors.Configf("billing period %q is missing", period))
			continue
		}
		for _, rule := range rules {
			if err := rule(period, ps); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", period, err))
			}
		}
	}

	return errs
}

// validateNotEmpty ensures a recommendation always has a base tier
func validateNotEmpty(_ types.BillingPeriod, ps PeriodSpec) error {
	if len(ps.Tiers) == 0 {
		return errors.Config("no tiers defined")
	}
	return nil
}

// validateTierFields checks each tier's required fields and signs
func validateTierFields(_ types.BillingPeriod, ps PeriodSpec) error {
	for _, t := range ps.Tiers {
		if err := validate.Struct(t); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "tier %q", t.Key)
		}
		if t.MonthlyCost.IsNegative() {
			return errors.Configf("tier %q: cost %s is negative", t.Key, t.MonthlyCost)
		}
		if t.CapacityGB.IsNegative() {
			return errors.Configf("tier %q: capacity %s is negative", t.Key, t.CapacityGB)
		}
	}
	return nil
}

// validateUniqueKeys ensures tier keys are unique within a period
func validateUniqueKeys(_ types.BillingPeriod, ps PeriodSpec) error {
	seen := make(map[string]bool, len(ps.Tiers))
	for _, t := range ps.Tiers {
		if seen[t.Key] {
			return errors.Configf("duplicate tier key %q", t.Key)
		}
		seen[t.Key] = true
	}
	return nil
}

// validateCapacityOrder ensures tiers are listed by non-decreasing capacity,
// which first-fit recommendation relies on
func validateCapacityOrder(_ types.BillingPeriod, ps PeriodSpec) error {
	return CheckCapacityOrder(ps.Tiers)
}

// validateSchedule ensures an enterprise schedule is present and well formed
func validateSchedule(_ types.BillingPeriod, ps PeriodSpec) error {
	if ps.Schedule == nil {
		return errors.Config("no enterprise rate schedule")
	}
	return ps.Schedule.Validate()
}

// CheckCapacityOrder returns a CONFIG_ERROR if any tier has less capacity
// than the one before it. Equal capacities are allowed.
func CheckCapacityOrder(tiers []types.Tier) error {
	for i := 1; i < len(tiers); i++ {
		if tiers[i].CapacityGB.LessThan(tiers[i-1].CapacityGB) {
			return errors.Configf("tier %q (%s GB) is listed after larger tier %q (%s GB)",
				tiers[i].Key, tiers[i].CapacityGB, tiers[i-1].Key, tiers[i-1].CapacityGB)
		}
	}
	return nil
}

// MustNew panics if spec does not validate
func MustNew(spec Spec) *Catalog {
	c, err := New(spec)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog: %v", err))
	}
	return c
}
