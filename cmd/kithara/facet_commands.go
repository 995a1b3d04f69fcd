package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kithara/internal/catalog"
)

func newCategoriesCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List sound categories with counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				facets, err := store.Categories(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFacetTable("Category", facets))
				return nil
			})
		},
	}
}

func newUnitsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List unit types with counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				facets, err := store.UnitTypes(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFacetTable("Unit", facets))
				return nil
			})
		},
	}
}

func renderFacetTable(label string, facets []catalog.Facet) string {
	rows := make([][]string, 0, len(facets))
	for _, f := range facets {
		rows = append(rows, []string{f.Name, strconv.Itoa(f.Count)})
	}
	return renderTable([]string{label, "Sounds"}, rows, 1)
}
