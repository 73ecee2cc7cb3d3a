// Package catalog - HCL catalog loader
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"storage-planner/core/pricing"
	"storage-planner/core/types"
	"storage-planner/internal/errors"
	"storage-planner/internal/logging"
)

//go:embed default.hcl
var defaultHCL []byte

// DefaultFilename is the name reported for the embedded catalog
const DefaultFilename = "default.hcl"

type fileSchema struct {
	Version    string           `hcl:"version,optional"`
	Currency   string           `hcl:"currency,optional"`
	Periods    []periodBlock    `hcl:"period,block"`
	Enterprise *enterpriseBlock `hcl:"enterprise,block"`
}

type periodBlock struct {
	Name  string      `hcl:"name,label"`
	Tiers []tierBlock `hcl:"tier,block"`
	Rates *ratesBlock `hcl:"enterprise_rates,block"`
}

type tierBlock struct {
	Key         string    `hcl:"key,label"`
	Name        string    `hcl:"name"`
	Cost        cty.Value `hcl:"cost"`
	CapacityGB  cty.Value `hcl:"capacity_gb"`
	Seats       int       `hcl:"seats"`
	SeatsOrMore bool      `hcl:"seats_or_more,optional"`
	Features    []string  `hcl:"features,optional"`
}

type ratesBlock struct {
	DefaultRate cty.Value   `hcl:"default_rate"`
	Bands       []bandBlock `hcl:"band,block"`
}

type bandBlock struct {
	ThresholdGB cty.Value `hcl:"threshold_gb"`
	RatePerGB   cty.Value `hcl:"rate_per_gb"`
}

type enterpriseBlock struct {
	Name     string   `hcl:"name"`
	Features []string `hcl:"features,optional"`
}

// Parse decodes and validates an HCL catalog
func Parse(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parse catalog "+filename, diagError(diags))
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, errors.Parsing("decode catalog "+filename, diagError(diags))
	}

	spec, err := schema.toSpec()
	if err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "catalog %s", filename)
	}

	c, err := New(spec)
	if err != nil {
		return nil, err
	}

	stats := c.Stats()
	logging.Debug("catalog loaded",
		zap.String("file", filename),
		zap.String("version", c.Version()),
		zap.Int("tiers", stats.Total),
	)
	return c, nil
}

// LoadFile reads and parses an HCL catalog from disk
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.TypeNotFound, "catalog file "+path, err)
		}
		return nil, errors.Wrap(errors.TypeConfig, "read catalog "+path, err)
	}
	return Parse(src, path)
}

// Load returns the catalog at path, or the embedded default when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which only a broken build can cause.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultHCL, DefaultFilename)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultSource returns the embedded catalog file contents
func DefaultSource() []byte {
	return append([]byte(nil), defaultHCL...)
}

func (f *fileSchema) toSpec() (Spec, error) {
	spec := Spec{
		Version:  f.Version,
		Currency: types.Currency(f.Currency),
		Periods:  make(map[types.BillingPeriod]PeriodSpec, len(f.Periods)),
	}

	if f.Enterprise != nil {
		spec.Enterprise = types.EnterpriseTemplate{
			Key:      "enterprise",
			Name:     f.Enterprise.Name,
			Features: f.Enterprise.Features,
		}
	}

	for _, pb := range f.Periods {
		period, err := types.ParseBillingPeriod(pb.Name)
		if err != nil {
			return Spec{}, err
		}
		if _, dup := spec.Periods[period]; dup {
			return Spec{}, errors.Configf("billing period %q defined twice", period)
		}

		ps := PeriodSpec{Tiers: make([]types.Tier, 0, len(pb.Tiers))}
		for _, tb := range pb.Tiers {
			tier, err := tb.toTier()
			if err != nil {
				return Spec{}, fmt.Errorf("%s: %w", period, err)
			}
			ps.Tiers = append(ps.Tiers, tier)
		}

		if pb.Rates != nil {
			schedule, err := pb.Rates.toSchedule()
			if err != nil {
				return Spec{}, fmt.Errorf("%s: %w", period, err)
			}
			ps.Schedule = schedule
		}

		spec.Periods[period] = ps
	}

	return spec, nil
}

func (tb tierBlock) toTier() (types.Tier, error) {
	cost, err := toDecimal(tb.Cost, "tier "+tb.Key+" cost")
	if err != nil {
		return types.Tier{}, err
	}
	capacity, err := toDecimal(tb.CapacityGB, "tier "+tb.Key+" capacity_gb")
	if err != nil {
		return types.Tier{}, err
	}
	return types.Tier{
		Key:         tb.Key,
		Name:        tb.Name,
		MonthlyCost: cost,
		CapacityGB:  capacity,
		Seats:       types.Seats{Count: tb.Seats, OrMore: tb.SeatsOrMore},
		Features:    tb.Features,
	}, nil
}

func (rb ratesBlock) toSchedule() (*pricing.EnterpriseSchedule, error) {
	def, err := toDecimal(rb.DefaultRate, "default_rate")
	if err != nil {
		return nil, err
	}
	bands := make([]pricing.RateBand, 0, len(rb.Bands))
	for i, bb := range rb.Bands {
		threshold, err := toDecimal(bb.ThresholdGB, fmt.Sprintf("band %d threshold_gb", i))
		if err != nil {
			return nil, err
		}
		rate, err := toDecimal(bb.RatePerGB, fmt.Sprintf("band %d rate_per_gb", i))
		if err != nil {
			return nil, err
		}
		bands = append(bands, pricing.RateBand{ThresholdGB: threshold, RatePerGB: rate})
	}
	return pricing.NewEnterpriseSchedule(bands, def)
}

// toDecimal converts an HCL number without a float64 round trip, so 1228.8
// stays exactly 1228.8
func toDecimal(v cty.Value, what string) (decimal.Decimal, error) {
	if v.IsNull() || !v.IsKnown() {
		return decimal.Decimal{}, errors.Configf("%s is not set", what)
	}
	if !v.Type().Equals(cty.Number) {
		return decimal.Decimal{}, errors.Configf("%s must be a number, got %s", what, v.Type().FriendlyName())
	}
	d, err := decimal.NewFromString(v.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(errors.TypeParsing, err, "%s", what)
	}
	return d, nil
}

func diagError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			if d.Subject != nil {
				return fmt.Errorf("%s:%d: %s: %s", d.Subject.Filename, d.Subject.Start.Line, d.Summary, d.Detail)
			}
			return fmt.Errorf("%s: %s", d.Summary, d.Detail)
		}
	}
	return diags
}
