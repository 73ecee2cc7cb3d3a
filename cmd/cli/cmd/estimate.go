// Package cmd - estimate command
package cmd

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storage-planner/core/catalog"
	"storage-planner/core/engine"
	"storage-planner/core/estimation"
	"storage-planner/core/output"
	"storage-planner/core/types"
	"storage-planner/internal/config"
	"storage-planner/internal/errors"
	"storage-planner/internal/logging"
)

type estimateOptions struct {
	films   string
	minutes string
	highRes string
	period  string
	format  string
	noColor bool
	catalog string
}

func newEstimateCmd() *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate storage and recommend a plan",
		Long: `Estimate yearly storage from the number of films, their average
length and the share shot in 4K, then recommend the cheapest plan that
holds it. Requirements beyond the largest plan get an Enterprise quote.

Examples:
  storage-planner estimate --films 12 --minutes 120 --high-res 25
  storage-planner estimate --films 400 --minutes 150 --high-res 100 --period monthly
  storage-planner estimate --films 12 --minutes 120 --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.films, "films", "0", "films per year")
	cmd.Flags().StringVar(&opts.minutes, "minutes", "0", "average minutes per film")
	cmd.Flags().StringVar(&opts.highRes, "high-res", "0", "percentage of footage in 4K (0-100)")
	cmd.Flags().StringVarP(&opts.period, "period", "p", "", "billing period (monthly, annual)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (cli, json, markdown)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "HCL plan catalog (overrides config)")
	return cmd
}

func runEstimate(cmd *cobra.Command, opts *estimateOptions) error {
	cfg := config.Get()

	inputs, err := parseInputs(opts)
	if err != nil {
		return err
	}

	period, err := types.ParseBillingPeriod(firstNonEmpty(opts.period, cfg.Output.DefaultPeriod))
	if err != nil {
		return err
	}

	calc, err := newCalculator(cfg, opts.catalog)
	if err != nil {
		return err
	}

	result, err := calc.Calculate(engine.Request{Inputs: inputs, Period: period})
	if err != nil {
		return err
	}

	registry := output.DefaultRegistry(opts.noColor || cfg.Output.NoColor)
	formatter, err := registry.Get(firstNonEmpty(opts.format, cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}

	logging.Debug("rendering result",
		zap.String("format", string(formatter.Format())),
		zap.Bool("complete", result.Complete),
	)
	return formatter.Render(cmd.OutOrStdout(), result)
}

func parseInputs(opts *estimateOptions) (estimation.Inputs, error) {
	films, err := parseNumber("films", opts.films)
	if err != nil {
		return estimation.Inputs{}, err
	}
	minutes, err := parseNumber("minutes", opts.minutes)
	if err != nil {
		return estimation.Inputs{}, err
	}
	highRes, err := parseNumber("high-res", opts.highRes)
	if err != nil {
		return estimation.Inputs{}, err
	}

	in := estimation.Inputs{
		FilmsPerYear:   films,
		MinutesPerFilm: minutes,
		HighResPercent: highRes,
	}
	if err := estimation.ValidateInputs(in); err != nil {
		return estimation.Inputs{}, err
	}
	return in, nil
}

// parseNumber accepts plain decimal numbers only. Empty means zero.
func parseNumber(flag, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Inputf("--%s must be a number, got %q", flag, raw)
	}
	return v, nil
}

func newCalculator(cfg *config.Config, catalogPath string) (*engine.Calculator, error) {
	c, err := catalog.Load(firstNonEmpty(catalogPath, cfg.Catalog.Path))
	if err != nil {
		return nil, err
	}
	est, err := estimation.New(cfg.Estimation.Rates())
	if err != nil {
		return nil, err
	}
	return engine.New(c, est), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
