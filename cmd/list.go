package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"serial-monitor/pkg/serial"
)

type listOptions struct {
	details bool
	format  string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available serial ports",
		Long: `List all available serial ports on the system.

On different platforms:
  - Windows: Lists COM ports
  - Linux: Lists /dev/tty* devices
  - macOS: Lists /dev/cu.* and /dev/tty.* devices`,
		Aliases: []string{"ls", "ports"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := serial.GetDetailedPortsList()
			if err != nil {
				return fmt.Errorf("failed to list ports: %w", err)
			}
			return printPorts(cmd.OutOrStdout(), ports, *opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "show detailed port information")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, csv, json)")

	return cmd
}

func printPorts(w io.Writer, ports []serial.PortInfo, opts listOptions) error {
	switch opts.format {
	case "table", "":
		printPortsTable(w, ports, opts.details)
		return nil
	case "csv":
		printPortsCSV(w, ports, opts.details)
		return nil
	case "json":
		return printPortsJSON(w, ports, opts.details)
	default:
		return fmt.Errorf("unknown format %q (table, csv, json)", opts.format)
	}
}

func printPortsTable(w io.Writer, ports []serial.PortInfo, details bool) {
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found.")
		return
	}

	fmt.Fprintf(w, "Found %d serial port(s):\n", len(ports))
	for _, p := range ports {
		fmt.Fprintf(w, "  %s", p.Name)
		if details && p.IsUSB {
			fmt.Fprintf(w, " [USB]")
			if p.VID != "" || p.PID != "" {
				fmt.Fprintf(w, " VID:%s PID:%s", p.VID, p.PID)
			}
			if p.Product != "" {
				fmt.Fprintf(w, " - %s", p.Product)
			}
			if p.SerialNumber != "" {
				fmt.Fprintf(w, " (SN: %s)", p.SerialNumber)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nUse 'serial-monitor --port <port>' to open one.")
}

func printPortsCSV(w io.Writer, ports []serial.PortInfo, details bool) {
	if !details {
		fmt.Fprintln(w, "port")
		for _, p := range ports {
			fmt.Fprintln(w, p.Name)
		}
		return
	}

	fmt.Fprintln(w, "port,is_usb,vid,pid,product,serial_number")
	for _, p := range ports {
		fmt.Fprintf(w, "%s,%t,%s,%s,%s,%s\n", p.Name, p.IsUSB, p.VID, p.PID, p.Product, p.SerialNumber)
	}
}

func printPortsJSON(w io.Writer, ports []serial.PortInfo, details bool) error {
	var v any = ports
	if !details {
		names := make([]string, len(ports))
		for i, p := range ports {
			names[i] = p.Name
		}
		v = names
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode ports: %w", err)
	}
	return nil
}
