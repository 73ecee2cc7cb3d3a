package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"storage-planner/core/engine"
	"storage-planner/core/types"
	"storage-planner/core/ui"
	"storage-planner/core/units"
)

// CLIFormatter renders a terminal report
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes result to w
func (f *CLIFormatter) Render(w io.Writer, result *engine.Result) error {
	out := ui.NewWriter(w, f.noColor)

	if result.Complete {
		out.Header("Storage Estimate")
		out.KeyValue("Films per year", formatNumber(result.Inputs.FilmsPerYear))
		out.KeyValue("Minutes per film", formatNumber(result.Inputs.MinutesPerFilm))
		out.KeyValue("High-res share", formatNumber(result.Inputs.HighResPercent)+"%")
		out.KeyValue("HD storage", units.FormatStorage(result.Estimate.StandardGB))
		out.KeyValue("4K storage", units.FormatStorage(result.Estimate.HighResGB))
		out.KeyValue("Total storage", out.Color(ui.Bold, units.FormatStorage(result.Estimate.TotalGB)))

		out.Header("Recommended Plan")
		renderRecommendation(out, result.Recommendation)
	} else {
		out.Println("")
		out.Info("Enter films per year and minutes per film to get a recommendation.")
	}

	out.Header(periodTitle(result.Period) + " Plans")
	table := out.NewTable("", "Plan", "Monthly", "Storage", "Users")
	for _, t := range result.Tiers {
		cells := []string{"", t.Name, units.FormatCost(t.MonthlyCost), units.FormatStorage(t.CapacityGB), t.Seats.String()}
		if result.IsRecommended(t.Key) {
			cells[0] = "★"
			table.AddMarkedRow(cells...)
			continue
		}
		table.AddRow(cells...)
	}
	if ent, ok := result.Recommendation.(types.EnterpriseTier); ok {
		table.AddMarkedRow("★", ent.Name, units.FormatCost(ent.MonthlyCost), units.FormatStorage(ent.CapacityGB), ent.Seats.String())
	}
	table.Render()
	out.Println("")

	return nil
}

func renderRecommendation(out *ui.Writer, rec types.Recommendation) {
	plan := rec.Plan()
	out.Box(ui.Green,
		"Plan:         "+plan.Name,
		"Monthly cost: "+units.FormatCost(plan.MonthlyCost),
		"Storage:      "+units.FormatStorage(plan.CapacityGB),
		"Users:        "+plan.Seats.String(),
	)

	if ent, ok := rec.(types.EnterpriseTier); ok {
		out.Println("")
		out.SubHeader("Pricing breakdown")
		out.KeyValue("Base ("+ent.BaseTier+")", units.FormatCost(ent.BaseCost))
		out.KeyValue("Extra storage", fmt.Sprintf("%s × %s = %s",
			units.FormatStorage(ent.ExtraGB), units.FormatRate(ent.Rate), units.FormatCost(ent.AdditionalCost)))
		out.KeyValue("Total", units.FormatCost(ent.MonthlyCost))
	}

	out.Println("")
	out.SubHeader("Includes")
	for _, feature := range plan.Features {
		out.Println("  • " + feature)
	}
}

func periodTitle(p types.BillingPeriod) string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
