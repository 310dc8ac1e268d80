// Package config provides the monitor's run configuration: flag registration,
// environment binding and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"serial-monitor/pkg/serial"
)

// EnvPrefix prefixes every environment variable, e.g. SERIAL_MONITOR_BAUD_RATE
const EnvPrefix = "SERIAL_MONITOR"

// DefaultLogFile is the session log written when --log-file is not given
const DefaultLogFile = "serial_monitor.log"

const (
	MinPollInterval     = 10 * time.Millisecond
	MaxPollInterval     = time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Flag names double as viper keys
const (
	KeyPort         = "port"
	KeyBaudRate     = "baud-rate"
	KeyDataBits     = "data-bits"
	KeyStopBits     = "stop-bits"
	KeyParity       = "parity"
	KeyLogFile      = "log-file"
	KeyNoLog        = "no-log"
	KeyHistoryLimit = "history-limit"
	KeyPollInterval = "poll-interval"
	KeyDebugLog     = "debug-log"
	KeyVerbose      = "verbose"
)

// Configuration is the validated input to a monitor session
type Configuration struct {
	Port     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string

	LogFile string
	NoLog   bool

	HistoryLimit int
	PollInterval time.Duration

	// DebugLog receives diagnostic logs while the screen is in use; empty
	// discards them
	DebugLog string
	Verbose  bool
}

// Default returns the configuration used when no flag or variable is set
func Default() Configuration {
	sc := serial.DefaultConfig()
	return Configuration{
		Port:         sc.Port,
		BaudRate:     sc.BaudRate,
		DataBits:     sc.DataBits,
		StopBits:     sc.StopBits,
		Parity:       sc.Parity,
		LogFile:      DefaultLogFile,
		PollInterval: DefaultPollInterval,
	}
}

// RegisterFlags adds the monitor flags to fs with their defaults
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyPort, d.Port, "serial port (/dev/tty* or COM*)")
	fs.IntP(KeyBaudRate, "b", d.BaudRate, "baud rate")
	fs.Int(KeyDataBits, d.DataBits, "data bits (5, 6, 7, or 8)")
	fs.Int(KeyStopBits, d.StopBits, "stop bits (1 or 2)")
	fs.String(KeyParity, d.Parity, "parity (none, odd, even, mark, space)")
	fs.String(KeyLogFile, d.LogFile, "session log file")
	fs.Bool(KeyNoLog, false, "disable the session log")
	fs.Int(KeyHistoryLimit, 0, "maximum commands kept in history (0 = unbounded)")
	fs.Duration(KeyPollInterval, d.PollInterval, "redraw interval when idle")
	fs.String(KeyDebugLog, "", "write diagnostic logs to this file")
	fs.BoolP(KeyVerbose, "v", false, "verbose output")
}

// Load reads the configuration from fs, letting SERIAL_MONITOR_* variables
// fill in flags that were not given on the command line. The result is not
// validated.
func Load(fs *pflag.FlagSet) (Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Configuration{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	return Configuration{
		Port:         v.GetString(KeyPort),
		BaudRate:     v.GetInt(KeyBaudRate),
		DataBits:     v.GetInt(KeyDataBits),
		StopBits:     v.GetInt(KeyStopBits),
		Parity:       strings.ToLower(v.GetString(KeyParity)),
		LogFile:      v.GetString(KeyLogFile),
		NoLog:        v.GetBool(KeyNoLog),
		HistoryLimit: v.GetInt(KeyHistoryLimit),
		PollInterval: v.GetDuration(KeyPollInterval),
		DebugLog:     v.GetString(KeyDebugLog),
		Verbose:      v.GetBool(KeyVerbose),
	}, nil
}

// Validate checks every field; the first problem is returned
func (c Configuration) Validate() error {
	if err := c.Serial().Validate(); err != nil {
		return err
	}

	if !c.NoLog && strings.TrimSpace(c.LogFile) == "" {
		return fmt.Errorf("log file cannot be empty unless --%s is set", KeyNoLog)
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit cannot be negative, got: %d", c.HistoryLimit)
	}

	if c.PollInterval < MinPollInterval || c.PollInterval > MaxPollInterval {
		return fmt.Errorf("poll interval must be between %v and %v, got: %v", MinPollInterval, MaxPollInterval, c.PollInterval)
	}

	return nil
}

// Serial returns the port settings
func (c Configuration) Serial() serial.Config {
	return serial.Config{
		Port:     c.Port,
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
		Parity:   c.Parity,
	}
}

// SessionLogPath returns the session log path, or "" when logging is off
func (c Configuration) SessionLogPath() string {
	if c.NoLog {
		return ""
	}
	return c.LogFile
}
