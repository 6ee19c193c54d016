package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/itineris/internal/export"
)

func newExportCmd(o *options) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export daily study minutes and sessions (and tasks, as JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			sess, err := openSession(cmd.Context(), o, consoleLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			if output == "" {
				output = fmt.Sprintf("itineris-export-%s.%s", sess.dash.Now().Format("2006-01-02"), format)
			}

			days := export.Days(sess.dash.Ledger(), sess.dash.Sessions())
			switch format {
			case "csv":
				err = export.ToCSV(days, output)
			case "json":
				err = export.ToJSON(sess.dash.UserID(), days, sess.dash.Tasks(), output)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", len(days), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default itineris-export-DATE.FORMAT)")
	return cmd
}
