package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"storage-planner/core/catalog"
	"storage-planner/core/engine"
	"storage-planner/core/estimation"
	"storage-planner/core/types"
	"storage-planner/internal/errors"
)

func calculate(t *testing.T, films, minutes float64, period types.BillingPeriod) *engine.Result {
	t.Helper()
	est, err := estimation.New(estimation.Rates{
		StandardGBPerMinute: decimal.NewFromInt(1),
		HighResGBPerMinute:  decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := engine.New(catalog.Default(), est).Calculate(engine.Request{
		Inputs: estimation.Inputs{FilmsPerYear: films, MinutesPerFilm: minutes},
		Period: period,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return res
}

func render(t *testing.T, format string, res *engine.Result) string {
	t.Helper()
	f, err := DefaultRegistry(true).Get(format)
	if err != nil {
		t.Fatalf("Get(%s): %v", format, err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf, res); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(true)
	if got := strings.Join(r.Formats(), ","); got != "cli,json,markdown" {
		t.Errorf("Formats() = %s", got)
	}
	if _, err := r.Get("html"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("Get(html) = %v", err)
	}
}

func TestCLIFixedTier(t *testing.T) {
	out := render(t, "cli", calculate(t, 5, 100, types.Annual))

	for _, want := range []string{
		"Total storage:",
		"500.00 GB",
		"Plan:         Pro",
		"Monthly cost: $51.00",
		"Annual Plans",
		"★ │ Pro",
		"Up to 2 users",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Pricing breakdown") {
		t.Error("fixed tier should not show an enterprise breakdown")
	}
}

func TestCLIEnterprise(t *testing.T) {
	out := render(t, "cli", calculate(t, 1229, 1, types.Monthly))

	for _, want := range []string{
		"Plan:         Enterprise",
		"Monthly cost: $111.19",
		"Users:        5+",
		"Pricing breakdown",
		"Base (business):",
		"0.20 GB × $0.9375/GB = $0.19",
		"1.20 TB custom storage",
		"Monthly Plans",
		"★ │ Enterprise",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q:\n%s", want, out)
		}
	}
}

func TestCLIIncomplete(t *testing.T) {
	out := render(t, "cli", calculate(t, 0, 90, types.Annual))
	if !strings.Contains(out, "Enter films per year") {
		t.Errorf("missing prompt:\n%s", out)
	}
	if strings.Contains(out, "★") {
		t.Error("no plan should be marked without a recommendation")
	}
	if !strings.Contains(out, "Starter") {
		t.Error("plan table should still be listed")
	}
}

func TestJSON(t *testing.T) {
	out := render(t, "json", calculate(t, 1229, 1, types.Monthly))

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	rec, ok := decoded["recommendation"].(map[string]interface{})
	if !ok {
		t.Fatalf("recommendation missing: %s", out)
	}
	if rec["kind"] != "enterprise" || rec["monthly_cost"] != "111.1875" || rec["rate"] != "0.9375" {
		t.Errorf("unexpected recommendation %v", rec)
	}
}

func TestMarkdown(t *testing.T) {
	out := render(t, "markdown", calculate(t, 2, 30, types.Annual))
	for _, want := range []string{
		"# Storage Plan",
		"| **Total storage** | **60.00 GB** |",
		"**Growth**: $37.00 per month, 100.00 GB, 1 users",
		"| **Growth** ★ | $37.00 | 100.00 GB | 1 |",
		"## Annual plans",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownEnterpriseBreakdown(t *testing.T) {
	out := render(t, "markdown", calculate(t, 3000, 1, types.Annual))
	if !strings.Contains(out, "- Extra storage: 1.73 TB at $0.8750/GB = $1549.80") {
		t.Errorf("breakdown missing:\n%s", out)
	}
}
