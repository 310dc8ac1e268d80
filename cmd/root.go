// Package cmd provides the serial-monitor command line
package cmd

import (
	"github.com/spf13/cobra"

	"serial-monitor/pkg/config"
)

// Version is reported by --version
var Version = "1.0.0"

// NewRootCmd builds the serial-monitor command. Running it without a
// subcommand opens the monitor.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "serial-monitor",
		Short: "Interactive monitor for line-oriented serial devices",
		Long: `Open a serial port, show what the device prints and send typed commands.

Keys:
  Enter            send the input line
  Up/Down          recall previous commands
  Left/Right       move the cursor (Home/End jump)
  PageUp/PageDown  scroll the output
  Esc              exit

Every flag can also be set through the environment, e.g.
SERIAL_MONITOR_BAUD_RATE=9600.`,
		Version:           Version,
		Args:              cobra.NoArgs,
		RunE:              runMonitor,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	config.RegisterFlags(root.Flags())
	root.AddCommand(newListCmd())

	return root
}
