package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/pkordes/wanderlust/internal/domain"
)

func (c *cli) tripsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List or create trips",
	}
	cmd.AddCommand(c.tripsListCmd(), c.tripsCreateCmd())
	return cmd
}

func (c *cli) tripsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := newTable()
			tbl.AddRow("ID", "DESTINATION", "START", "DAYS", "ITEMS")
			for _, t := range c.app.Trips.List(cmd.Context()) {
				items := 0
				for _, day := range t.Days {
					items += len(day)
				}
				tbl.AddRow(t.ID, t.Destination, t.StartDate, len(t.Dates), items)
			}
			_, err := fmt.Fprintln(c.out, tbl)
			return err
		},
	}
}

func (c *cli) tripsCreateCmd() *cobra.Command {
	var tpl domain.TripTemplate
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip",
		Example: `  planner trips create --destination "Kyoto" --start 2025-04-01 --days 4
  planner trips create    # blank template: today, three days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trip, err := c.app.Trips.Create(cmd.Context(), tpl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, trip.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&tpl.Destination, "destination", "", "trip title")
	cmd.Flags().StringVar(&tpl.StartDate, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().IntVar(&tpl.DayCount, "days", 0, "number of days")
	return cmd
}

// newTable returns a table whose columns are padded by display width, so
// CJK destinations line up with ASCII ones.
func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}
