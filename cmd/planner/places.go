package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) placesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Browse the place catalog",
	}
	cmd.AddCommand(c.placesSearchCmd())
	return cmd
}

func (c *cli) placesSearchCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "search [KEYWORD...]",
		Short: "Search places by keyword and category",
		Example: `  planner places search 沖繩
  planner places search --category food`,
		RunE: func(cmd *cobra.Command, args []string) error {
			places, err := c.app.Catalog.Search(cmd.Context(), strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			tbl := newTable()
			tbl.AddRow("ID", "CATEGORY", "CITY", "TITLE")
			for _, p := range places {
				tbl.AddRow(p.ID, p.Category, p.City, p.Title)
			}
			_, err = fmt.Fprintln(c.out, tbl)
			return err
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "food, shopping, scenery, stay, fun, misc or all")
	return cmd
}
