package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"storage-planner/core/pricing"
	"storage-planner/core/types"
	"storage-planner/internal/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDefaultCatalogContents(t *testing.T) {
	c := Default()

	monthly, err := c.TiersFor(types.Monthly)
	if err != nil {
		t.Fatalf("TiersFor(monthly): %v", err)
	}
	annual, err := c.TiersFor(types.Annual)
	if err != nil {
		t.Fatalf("TiersFor(annual): %v", err)
	}

	wantMonthly := []struct {
		key, cost, capacity string
	}{
		{"free", "0", "10"},
		{"growth", "44", "100"},
		{"pro", "61", "600"},
		{"business", "111", "1228.8"},
	}
	if len(monthly) != len(wantMonthly) {
		t.Fatalf("monthly has %d tiers, want %d", len(monthly), len(wantMonthly))
	}
	for i, w := range wantMonthly {
		tier := monthly[i]
		if tier.Key != w.key || !tier.MonthlyCost.Equal(d(w.cost)) || !tier.CapacityGB.Equal(d(w.capacity)) {
			t.Errorf("monthly[%d] = %s %s %s, want %s %s %s",
				i, tier.Key, tier.MonthlyCost, tier.CapacityGB, w.key, w.cost, w.capacity)
		}
	}

	// The annual catalog has an extra entry tier; periods are not symmetric.
	if len(annual) != 5 || annual[1].Key != "starter" {
		t.Errorf("annual tiers unexpected: %d, second=%q", len(annual), annual[1].Key)
	}
	if got := annual[4]; got.Key != "business" || !got.MonthlyCost.Equal(d("94")) {
		t.Errorf("annual business = %+v", got)
	}
	if got := annual[4].Seats; got.Count != 5 || got.OrMore {
		t.Errorf("business seats = %+v", got)
	}
	if len(annual[4].Features) != 6 || annual[4].Features[0] != "1.20 TB upload per year" {
		t.Errorf("business features = %v", annual[4].Features)
	}

	if c.Version() != "2025.1" || c.Currency() != types.CurrencyUSD {
		t.Errorf("version/currency = %q/%q", c.Version(), c.Currency())
	}
}

func TestDefaultCatalogScheduleMatchesBuiltin(t *testing.T) {
	builtin := pricing.DefaultSchedule()
	for _, period := range types.BillingPeriods() {
		s, err := Default().ScheduleFor(period)
		if err != nil {
			t.Fatalf("ScheduleFor(%s): %v", period, err)
		}
		got, want := s.Bands(), builtin.Bands()
		if len(got) != len(want) {
			t.Fatalf("%s: %d bands, want %d", period, len(got), len(want))
		}
		for i := range want {
			if !got[i].ThresholdGB.Equal(want[i].ThresholdGB) || !got[i].RatePerGB.Equal(want[i].RatePerGB) {
				t.Errorf("%s band %d = %+v, want %+v", period, i, got[i], want[i])
			}
		}
		if !s.DefaultRate().Equal(builtin.DefaultRate()) {
			t.Errorf("%s default rate = %s", period, s.DefaultRate())
		}
	}
}

func TestTiersForUnknownPeriodFails(t *testing.T) {
	tiers, err := Default().TiersFor(types.BillingPeriod("weekly"))
	if err == nil {
		t.Fatal("expected an error for an unknown period")
	}
	if tiers != nil {
		t.Errorf("expected no tiers, got %v", tiers)
	}
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("error type = %v", err)
	}
	if _, err := Default().ScheduleFor(""); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("ScheduleFor(\"\") = %v", err)
	}
}

func TestTiersForReturnsCopies(t *testing.T) {
	c := Default()
	tiers, _ := c.TiersFor(types.Annual)
	tiers[0].Name = "Mutated"
	tiers[0].Features[0] = "mutated"

	again, _ := c.TiersFor(types.Annual)
	if again[0].Name != "Free" || again[0].Features[0] != "10 GB upload" {
		t.Error("catalog state changed through a returned slice")
	}
}

func TestTierLookup(t *testing.T) {
	tier, err := Default().Tier(types.Monthly, "pro")
	if err != nil {
		t.Fatalf("Tier: %v", err)
	}
	if tier.Name != "Pro" || tier.Seats.Count != 2 {
		t.Errorf("unexpected tier %+v", tier)
	}
	if _, err := Default().Tier(types.Monthly, "starter"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("monthly starter should not exist, got %v", err)
	}
}

func TestEnterpriseTemplate(t *testing.T) {
	tmpl := Default().Enterprise()
	if tmpl.Name != "Enterprise" || len(tmpl.Features) != 6 {
		t.Fatalf("unexpected template %+v", tmpl)
	}
	if tmpl.Features[0] != "{storage} custom storage" {
		t.Errorf("first feature = %q", tmpl.Features[0])
	}
}

func TestStats(t *testing.T) {
	stats := Default().Stats()
	if stats.Total != 9 {
		t.Errorf("total = %d, want 9", stats.Total)
	}
	if stats.TiersByPeriod[types.Monthly] != 4 || stats.TiersByPeriod[types.Annual] != 5 {
		t.Errorf("by period = %v", stats.TiersByPeriod)
	}
	if strings.Join(stats.DistinctKeys, ",") != "business,free,growth,pro,starter" {
		t.Errorf("keys = %v", stats.DistinctKeys)
	}
}

func TestPeriods(t *testing.T) {
	got := Default().Periods()
	if len(got) != 2 || got[0] != types.Monthly || got[1] != types.Annual {
		t.Errorf("Periods() = %v", got)
	}
}

const minimalCatalog = `
version = "test"

period "monthly" {
  tier "small" {
    name        = "Small"
    cost        = 5
    capacity_gb = 10
    seats       = 1
  }
  tier "large" {
    name          = "Large"
    cost          = 50
    capacity_gb   = 200.5
    seats         = 3
    seats_or_more = true
  }
  enterprise_rates {
    default_rate = 1
    band {
      threshold_gb = 500
      rate_per_gb  = 0.5
    }
  }
}

period "annual" {
  tier "only" {
    name        = "Only"
    cost        = 40
    capacity_gb = 100
    seats       = 1
  }
  enterprise_rates {
    default_rate = 1
  }
}

enterprise {
  name = "Custom"
}
`

func TestParseMinimal(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog), "minimal.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tiers, _ := c.TiersFor(types.Monthly)
	if len(tiers) != 2 || !tiers[1].CapacityGB.Equal(d("200.5")) {
		t.Fatalf("unexpected tiers %+v", tiers)
	}
	if tiers[1].Seats.String() != "3+" {
		t.Errorf("seats = %s", tiers[1].Seats)
	}
	s, _ := c.ScheduleFor(types.Monthly)
	if !s.RateFor(d("501")).Equal(d("0.5")) || !s.RateFor(d("300")).Equal(d("1")) {
		t.Error("schedule not decoded")
	}
	if c.Enterprise().Name != "Custom" {
		t.Errorf("enterprise name = %q", c.Enterprise().Name)
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{
			name:    "syntax error",
			src:     `period "monthly" {`,
			errType: errors.TypeParsing,
		},
		{
			name:    "unknown period",
			src:     strings.Replace(minimalCatalog, `period "annual"`, `period "weekly"`, 1),
			errType: errors.TypeParsing,
		},
		{
			name:    "missing period",
			src:     minimalCatalog[:strings.Index(minimalCatalog, `period "annual"`)] + "enterprise {\n name = \"E\"\n}\n",
			errType: errors.TypeConfig,
		},
		{
			name:    "capacity out of order",
			src:     strings.Replace(minimalCatalog, "capacity_gb   = 200.5", "capacity_gb   = 9.5", 1),
			errType: errors.TypeConfig,
		},
		{
			name:    "zero seats",
			src:     strings.Replace(minimalCatalog, "seats       = 1\n  }\n  tier \"large\"", "seats       = 0\n  }\n  tier \"large\"", 1),
			errType: errors.TypeConfig,
		},
		{
			name:    "string cost",
			src:     strings.Replace(minimalCatalog, "cost        = 5", `cost        = "five"`, 1),
			errType: errors.TypeParsing,
		},
		{
			name:    "thresholds increasing",
			src:     strings.Replace(minimalCatalog, "default_rate = 1\n    band {", "default_rate = 1\n    band {\n      threshold_gb = 100\n      rate_per_gb  = 0.9\n    }\n    band {", 1),
			errType: errors.TypeParsing,
		},
		{
			name:    "missing schedule",
			src:     strings.Replace(minimalCatalog, "  enterprise_rates {\n    default_rate = 1\n  }\n", "", 1),
			errType: errors.TypeConfig,
		},
		{
			name:    "empty period",
			src:     strings.Replace(minimalCatalog, "  tier \"only\" {\n    name        = \"Only\"\n    cost        = 40\n    capacity_gb = 100\n    seats       = 1\n  }\n", "", 1),
			errType: errors.TypeConfig,
		},
		{
			name:    "duplicate tier key",
			src:     strings.Replace(minimalCatalog, `tier "large"`, `tier "small"`, 1),
			errType: errors.TypeConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.IsType(err, tt.errType) {
				t.Errorf("error = %v, want type %s", err, tt.errType)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.hcl")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Version() != "test" {
		t.Errorf("version = %q", c.Version())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.hcl")); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	def, err := Load("")
	if err != nil || def != Default() {
		t.Errorf("Load(\"\") should return the embedded default, got %v", err)
	}
}

func TestDefaultSourceRoundTrips(t *testing.T) {
	c, err := Parse(DefaultSource(), "copy.hcl")
	if err != nil {
		t.Fatalf("Parse(DefaultSource()): %v", err)
	}
	if c.Stats().Total != Default().Stats().Total {
		t.Error("reparsed default differs")
	}
}

func TestNewCopiesInput(t *testing.T) {
	schedule := pricing.DefaultSchedule()
	tiers := []types.Tier{{Key: "a", Name: "A", CapacityGB: d("1"), Seats: types.Seats{Count: 1}, Features: []string{"x"}}}
	c, err := New(Spec{
		Periods: map[types.BillingPeriod]PeriodSpec{
			types.Monthly: {Tiers: tiers, Schedule: schedule},
			types.Annual:  {Tiers: tiers, Schedule: schedule},
		},
		Enterprise: types.EnterpriseTemplate{Name: "E"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tiers[0].Features[0] = "changed"
	got, _ := c.TiersFor(types.Monthly)
	if got[0].Features[0] != "x" {
		t.Error("catalog aliases the caller's tiers")
	}
}

func TestCheckCapacityOrderAllowsTies(t *testing.T) {
	tiers := []types.Tier{
		{Key: "a", CapacityGB: d("10")},
		{Key: "b", CapacityGB: d("10")},
		{Key: "c", CapacityGB: d("20")},
	}
	if err := CheckCapacityOrder(tiers); err != nil {
		t.Errorf("ties should be allowed: %v", err)
	}
	tiers[2].CapacityGB = d("5")
	if err := CheckCapacityOrder(tiers); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for an empty spec")
		}
	}()
	MustNew(Spec{})
}

func TestDigest(t *testing.T) {
	reformatted := strings.ReplaceAll(string(DefaultSource()), "  ", "    ")
	reformatted = "# reformatted copy\n" + reformatted
	same, err := Parse([]byte(reformatted), "same.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if same.Digest() != Default().Digest() {
		t.Error("formatting changes should not change the digest")
	}

	repriced := strings.Replace(string(DefaultSource()), "111", "112", 1)
	other, err := Parse([]byte(repriced), "repriced.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if other.Digest() == Default().Digest() {
		t.Error("a price change must change the digest")
	}

	if got := Default().Digest().String(); !strings.HasPrefix(got, "sha256:") || len(got) != len("sha256:")+64 {
		t.Errorf("unexpected digest format %q", got)
	}
	if len(Default().Digest().Short()) != 12 {
		t.Error("Short should be 12 characters")
	}
}
