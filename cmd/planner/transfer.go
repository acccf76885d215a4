package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var tripID string
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup (or one trip) to stdout",
		Example: `  planner export > backup.json
  planner export --trip default_okinawa > okinawa.json
  planner export --csv > trips.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			switch {
			case asCSV && tripID != "":
				return errors.New("--csv exports every trip; drop --trip")
			case asCSV:
				return c.app.Export.ExportCSV(ctx, c.out)
			}

			var data []byte
			var err error
			if tripID != "" {
				data, err = c.app.Export.ExportTrip(ctx, tripID)
			} else {
				data, err = c.app.Export.ExportAll(ctx)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&tripID, "trip", "", "export only this trip")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write one CSV row per item")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a backup or a shared trip",
		Long: `import reads a file written by export. A single trip is added next to
the existing ones. A full backup replaces every trip and needs --yes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := c.app.Export.Import(cmd.Context(), data, yes)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s: %d trip(s)\n", res.Mode, len(res.Trips))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm replacing every trip with a full backup")
	return cmd
}
