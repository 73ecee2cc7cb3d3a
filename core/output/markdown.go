package output

import (
	"fmt"
	"io"
	"strings"

	"storage-planner/core/engine"
	"storage-planner/core/types"
	"storage-planner/core/units"
)

// MarkdownFormatter renders a markdown report, e.g. for a quote document
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes result to w
func (f *MarkdownFormatter) Render(w io.Writer, result *engine.Result) error {
	var b strings.Builder

	b.WriteString("# Storage Plan\n\n")

	if result.Complete {
		b.WriteString("## Estimate\n\n")
		b.WriteString("| | |\n|---|---|\n")
		fmt.Fprintf(&b, "| Films per year | %s |\n", formatNumber(result.Inputs.FilmsPerYear))
		fmt.Fprintf(&b, "| Minutes per film | %s |\n", formatNumber(result.Inputs.MinutesPerFilm))
		fmt.Fprintf(&b, "| High-res share | %s%% |\n", formatNumber(result.Inputs.HighResPercent))
		fmt.Fprintf(&b, "| HD storage | %s |\n", units.FormatStorage(result.Estimate.StandardGB))
		fmt.Fprintf(&b, "| 4K storage | %s |\n", units.FormatStorage(result.Estimate.HighResGB))
		fmt.Fprintf(&b, "| **Total storage** | **%s** |\n\n", units.FormatStorage(result.Estimate.TotalGB))

		plan := result.Recommendation.Plan()
		b.WriteString("## Recommended plan\n\n")
		fmt.Fprintf(&b, "**%s**: %s per month, %s, %s users\n\n",
			plan.Name, units.FormatCost(plan.MonthlyCost), units.FormatStorage(plan.CapacityGB), plan.Seats)

		if ent, ok := result.Recommendation.(types.EnterpriseTier); ok {
			fmt.Fprintf(&b, "- Base (%s): %s\n", ent.BaseTier, units.FormatCost(ent.BaseCost))
			fmt.Fprintf(&b, "- Extra storage: %s at %s = %s\n\n",
				units.FormatStorage(ent.ExtraGB), units.FormatRate(ent.Rate), units.FormatCost(ent.AdditionalCost))
		}

		for _, feature := range plan.Features {
			fmt.Fprintf(&b, "- %s\n", feature)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_Enter films per year and minutes per film to get a recommendation._\n\n")
	}

	fmt.Fprintf(&b, "## %s plans\n\n", periodTitle(result.Period))
	b.WriteString("| Plan | Monthly | Storage | Users |\n|---|---:|---:|---:|\n")
	for _, t := range result.Tiers {
		name := t.Name
		if result.IsRecommended(t.Key) {
			name = "**" + name + "** ★"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			name, units.FormatCost(t.MonthlyCost), units.FormatStorage(t.CapacityGB), t.Seats)
	}
	if result.Metadata.CatalogVersion != "" {
		fmt.Fprintf(&b, "\n_Catalog %s (%s)_\n", result.Metadata.CatalogVersion, result.Metadata.CatalogDigest)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
