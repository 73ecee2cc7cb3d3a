// Package types - Storage estimate and recommendation types
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StorageEstimate is the storage a production schedule needs, split by
// resolution class. TotalGB == StandardGB + HighResGB.
type StorageEstimate struct {
	TotalGB    decimal.Decimal `json:"total_gb"`
	StandardGB decimal.Decimal `json:"standard_gb"`
	HighResGB  decimal.Decimal `json:"high_res_gb"`
}

// IsZero reports whether nothing needs storing
func (e StorageEstimate) IsZero() bool {
	return e.TotalGB.IsZero()
}

// EnterprisePlan is a synthesized variable-price tier for requirements
// beyond the largest fixed tier.
type EnterprisePlan struct {
	Tier

	// BaseTier is the key of the fixed tier the price is built on
	BaseTier string `json:"base_tier"`

	// BaseCost is the base tier's monthly cost
	BaseCost decimal.Decimal `json:"base_cost"`

	// ExtraGB is the storage above the base tier's capacity
	ExtraGB decimal.Decimal `json:"extra_gb"`

	// Rate is the per-GB rate applied to ExtraGB
	Rate decimal.Decimal `json:"rate"`

	// AdditionalCost is ExtraGB * Rate
	AdditionalCost decimal.Decimal `json:"additional_cost"`
}

// RecommendationKind tags the recommendation variant
type RecommendationKind string

const (
	KindFixedTier      RecommendationKind = "fixed"
	KindEnterpriseTier RecommendationKind = "enterprise"
)

// Recommendation is either a FixedTier or an EnterpriseTier. The set is
// closed; switch on the concrete type to reach variant-specific fields.
type Recommendation interface {
	// Kind returns the variant tag
	Kind() RecommendationKind

	// Plan returns the tier-shaped view common to both variants
	Plan() Tier

	recommendation()
}

// FixedTier wraps a catalog tier that covers the requirement
type FixedTier struct {
	Tier
}

func (FixedTier) Kind() RecommendationKind { return KindFixedTier }
func (f FixedTier) Plan() Tier             { return f.Tier }
func (FixedTier) recommendation()          {}

// MarshalJSON adds the variant tag
func (f FixedTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind RecommendationKind `json:"kind"`
		Tier
	}{KindFixedTier, f.Tier})
}

// EnterpriseTier wraps a synthesized enterprise plan
type EnterpriseTier struct {
	EnterprisePlan
}

func (EnterpriseTier) Kind() RecommendationKind { return KindEnterpriseTier }
func (e EnterpriseTier) Plan() Tier             { return e.EnterprisePlan.Tier }
func (EnterpriseTier) recommendation()          {}

// MarshalJSON adds the variant tag
func (e EnterpriseTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind RecommendationKind `json:"kind"`
		EnterprisePlan
	}{KindEnterpriseTier, e.EnterprisePlan})
}
