// Package cmd - plans command
package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"storage-planner/core/catalog"
	"storage-planner/core/types"
	"storage-planner/core/ui"
	"storage-planner/core/units"
	"storage-planner/internal/config"
)

type plansOptions struct {
	period  string
	jsonOut bool
	noColor bool
	catalog string
}

type rateView struct {
	Above string `json:"above_gb"`
	Rate  string `json:"rate_per_gb"`
}

type plansView struct {
	Period      types.BillingPeriod `json:"period"`
	Currency    types.Currency      `json:"currency"`
	Version     string              `json:"catalog_version"`
	Tiers       []types.Tier        `json:"tiers"`
	Rates       []rateView          `json:"enterprise_rates"`
	DefaultRate string              `json:"enterprise_default_rate"`
}

func newPlansCmd() *cobra.Command {
	opts := &plansOptions{}

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the plans of a billing period",
		Long: `List every plan of a billing period with its price, storage and
users, followed by the per-GB rates used for Enterprise quotes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.period, "period", "p", "", "billing period (monthly, annual)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "HCL plan catalog (overrides config)")
	return cmd
}

func runPlans(cmd *cobra.Command, opts *plansOptions) error {
	cfg := config.Get()

	period, err := types.ParseBillingPeriod(firstNonEmpty(opts.period, cfg.Output.DefaultPeriod))
	if err != nil {
		return err
	}

	c, err := catalog.Load(firstNonEmpty(opts.catalog, cfg.Catalog.Path))
	if err != nil {
		return err
	}
	tiers, err := c.TiersFor(period)
	if err != nil {
		return err
	}
	schedule, err := c.ScheduleFor(period)
	if err != nil {
		return err
	}

	view := plansView{
		Period:      period,
		Currency:    c.Currency(),
		Version:     c.Version(),
		Tiers:       tiers,
		DefaultRate: schedule.DefaultRate().String(),
	}
	for _, b := range schedule.Bands() {
		view.Rates = append(view.Rates, rateView{Above: b.ThresholdGB.String(), Rate: b.RatePerGB.String()})
	}

	if opts.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	out := ui.NewWriter(cmd.OutOrStdout(), opts.noColor || cfg.Output.NoColor)
	out.Header(string(period) + " plans (" + string(view.Currency) + ", catalog " + view.Version + ")")
	table := out.NewTable("Plan", "Monthly", "Storage", "Users")
	for _, t := range tiers {
		table.AddRow(t.Name, units.FormatCost(t.MonthlyCost), units.FormatStorage(t.CapacityGB), t.Seats.String())
	}
	table.Render()

	out.SubHeader("Enterprise storage rates")
	rates := out.NewTable("Total above", "Rate")
	for _, b := range schedule.Bands() {
		rates.AddRow(units.FormatStorage(b.ThresholdGB), units.FormatRate(b.RatePerGB))
	}
	rates.AddRow("otherwise", units.FormatRate(schedule.DefaultRate()))
	rates.Render()
	out.Println("")
	return nil
}
