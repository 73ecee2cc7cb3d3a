// Package cmd - catalog command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storage-planner/core/catalog"
	"storage-planner/core/types"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate plan catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an HCL plan catalog",
		Long: `Parse a catalog file and run every consistency check the calculator
relies on: both billing periods present, unique plan keys, capacities in
non-decreasing order and a well-formed Enterprise rate schedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			stats := c.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: catalog %s is valid (%d plans", args[0], c.Version(), stats.Total)
			for _, p := range types.BillingPeriods() {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d %s", stats.TiersByPeriod[p], p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), ")\ndigest: %s\n", c.Digest())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the built-in catalog",
		Long:  `Print the embedded catalog source. Use it as a starting point for a custom catalog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(catalog.DefaultSource())
			return err
		},
	})

	return cmd
}
