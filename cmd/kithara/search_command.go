package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kithara/internal/catalog"
)

func newSearchCommand(cmdCtx *commandContext) *cobra.Command {
	var category string
	var unitType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the sound catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				sounds, err := store.Search(ctx, query, category, unitType)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, soundsPayload(sounds))
				}
				if len(sounds) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sounds found")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSoundTable(sounds))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Restrict results to a category")
	cmd.Flags().StringVar(&unitType, "unit", "", "Restrict results to a unit type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

type soundJSON struct {
	ID          string   `json:"id"`
	EventName   string   `json:"event_name"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	UnitType    string   `json:"unit_type,omitempty"`
	Subcategory string   `json:"subcategory"`
	FilePath    string   `json:"file_path"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"is_favorite"`
}

func soundsPayload(sounds []catalog.Sound) []soundJSON {
	out := make([]soundJSON, 0, len(sounds))
	for _, s := range sounds {
		out = append(out, soundJSON{
			ID:          s.ID,
			EventName:   s.EventName,
			DisplayName: s.DisplayName,
			Category:    s.Category,
			UnitType:    s.UnitType,
			Subcategory: s.Subcategory,
			FilePath:    s.FilePath,
			Tags:        s.Tags,
			IsFavorite:  s.IsFavorite,
		})
	}
	return out
}

func renderSoundTable(sounds []catalog.Sound) string {
	rows := make([][]string, 0, len(sounds))
	for _, s := range sounds {
		fav := ""
		if s.IsFavorite {
			fav = "*"
		}
		rows = append(rows, []string{
			s.ID,
			s.DisplayName,
			s.Category,
			s.UnitType,
			strings.Join(s.Tags, ", "),
			fav,
		})
	}
	return renderTable([]string{"ID", "Name", "Category", "Unit", "Tags", "Fav"}, rows)
}
