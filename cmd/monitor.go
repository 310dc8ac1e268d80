package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"serial-monitor/pkg/app"
	"serial-monitor/pkg/config"
	"serial-monitor/pkg/serial"
	"serial-monitor/pkg/sessionlog"
	"serial-monitor/pkg/terminal"

	"pkt.systems/pslog"
)

func runMonitor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	if err := serial.CheckAccess(cfg.Port); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
		printHints(stderr, serial.Hints(err))
		if errors.Is(err, fs.ErrNotExist) {
			printAvailablePorts(stderr, serial.ListPorts)
		}
	}

	port, err := serial.Open(cfg.Serial())
	if err != nil {
		printHints(stderr, serial.Hints(err))
		printAvailablePorts(stderr, serial.ListPorts)
		return app.NewAppError(app.ErrTransportOpen, "failed to open serial port", err)
	}

	sessionLog, err := sessionlog.New(cfg.SessionLogPath(), !cfg.NoLog)
	if err != nil {
		port.Close()
		return app.NewAppError(app.ErrLogFileOpen, "failed to open log file", err)
	}

	logger, closeDebugLog, err := openDebugLog(cfg.DebugLog, cfg.Verbose)
	if err != nil {
		sessionLog.Close()
		port.Close()
		return err
	}
	defer closeDebugLog()

	screen, err := terminal.Open()
	if err != nil {
		sessionLog.Close()
		port.Close()
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Start(); err != nil {
		screen.Close()
		sessionLog.Close()
		port.Close()
		return err
	}

	session, err := app.NewSession(port, screen, sessionLog, app.Options{
		Port:         cfg.Port,
		BaudRate:     cfg.BaudRate,
		PollInterval: cfg.PollInterval,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	})
	if err != nil {
		screen.Close()
		sessionLog.Close()
		port.Close()
		return err
	}

	runErr := session.Run(pslog.ContextWithLogger(ctx, logger))
	screen.Close()

	if cfg.Verbose {
		printSessionSummary(cmd.OutOrStdout(), session.Stats(), time.Now())
	}
	return runErr
}

// loadConfig reads and validates the flags; failures are Config errors
func loadConfig(cmd *cobra.Command) (config.Configuration, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Configuration{}, app.NewAppError(app.ErrConfig, "failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Configuration{}, app.NewAppError(app.ErrConfig, "invalid configuration", err)
	}
	return cfg, nil
}

// openDebugLog returns the diagnostics logger used while the screen is
// active. Without a path diagnostics are discarded.
func openDebugLog(path string, verbose bool) (pslog.Logger, func(), error) {
	level := pslog.DebugLevel
	if verbose {
		level = pslog.TraceLevel
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := pslog.NewWithOptions(w, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      level,
		VerboseFields: true,
	})
	return logger, closeFn, nil
}

func printHints(w io.Writer, hints []string) {
	if len(hints) == 0 {
		return
	}
	fmt.Fprintf(w, "\nPossible solutions:\n")
	for _, hint := range hints {
		fmt.Fprintf(w, "  - %s\n", hint)
	}
}

// printAvailablePorts prints the ports the system reports
func printAvailablePorts(w io.Writer, list func() ([]string, error)) {
	ports, err := list()
	if err != nil {
		fmt.Fprintf(w, "\nCould not list serial ports: %v\n", err)
		return
	}

	fmt.Fprintf(w, "\nAvailable ports:\n")
	if len(ports) == 0 {
		fmt.Fprintf(w, "  No serial ports found.\n")
		return
	}
	for _, p := range ports {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

func printSessionSummary(w io.Writer, stats app.Stats, now time.Time) {
	fmt.Fprintf(w, "\n=== Session Summary ===\n")
	fmt.Fprintf(w, "Duration: %v\n", now.Sub(stats.StartedAt).Round(time.Second))
	fmt.Fprintf(w, "Lines Received: %d\n", stats.LinesReceived)
	fmt.Fprintf(w, "Commands Sent: %d\n", stats.CommandsSent)
	fmt.Fprintf(w, "Write Failures: %d\n", stats.WriteFailures)
	fmt.Fprintf(w, "=======================\n")
}
