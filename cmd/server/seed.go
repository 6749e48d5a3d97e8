package main

import (
	"context"
	"fmt"

	"github.com/retouchlab/internal/content"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed [page...]",
	Short: "Store the default content for pages that have none yet",
	Long:  "Writes the default sections of the given pages (all pages when none are given). Sections that already exist are never overwritten.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		pages := args
		if len(pages) == 0 {
			pages = content.Pages()
		}
		for _, page := range pages {
			added, err := a.content.SeedPage(ctx, page)
			if err != nil {
				return fmt.Errorf("seed %s: %w", page, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d section(s) added\n", page, added)
		}
		return nil
	},
}
