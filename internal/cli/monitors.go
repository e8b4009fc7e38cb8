package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/younwookim/lumen/internal/infrastructure/platform"
)

// NewMonitorsCommand creates the monitors command.
func NewMonitorsCommand(_ *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List connected monitors",
		Long: `List connected monitors with the index used by the window
configuration's "monitor" field for fullscreen placement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMonitors(cmd, platform.Monitors(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printMonitors(cmd *cobra.Command, monitors []platform.Monitor, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if monitors == nil {
			monitors = []platform.Monitor{}
		}
		return enc.Encode(monitors)
	}
	if len(monitors) == 0 {
		_, err := fmt.Fprintln(out, "no monitors found")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tSIZE\tSCALE")
	for _, m := range monitors {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%.2f\n", m.Index, m.Name, m.Width, m.Height, m.Scale)
	}
	return tw.Flush()
}
