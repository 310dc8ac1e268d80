package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func load(t *testing.T, args ...string) Configuration {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t)

	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
	if cfg.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q, want /dev/ttyUSB0", cfg.Port)
	}
	if cfg.BaudRate != 57600 {
		t.Errorf("BaudRate = %d, want 57600", cfg.BaudRate)
	}
	if cfg.LogFile != "serial_monitor.log" {
		t.Errorf("LogFile = %q, want serial_monitor.log", cfg.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg := load(t,
		"--port", "/dev/ttyACM0",
		"-b", "115200",
		"--parity", "EVEN",
		"--log-file", "/tmp/session.log",
		"--history-limit", "50",
		"--poll-interval", "250ms",
		"--debug-log", "/tmp/debug.log",
		"-v",
	)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Port, "/dev/ttyACM0"},
		{"baud rate", cfg.BaudRate, 115200},
		{"parity", cfg.Parity, "even"},
		{"log file", cfg.LogFile, "/tmp/session.log"},
		{"history limit", cfg.HistoryLimit, 50},
		{"poll interval", cfg.PollInterval, 250 * time.Millisecond},
		{"debug log", cfg.DebugLog, "/tmp/debug.log"},
		{"verbose", cfg.Verbose, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERIAL_MONITOR_BAUD_RATE", "9600")
	t.Setenv("SERIAL_MONITOR_NO_LOG", "true")
	t.Setenv("SERIAL_MONITOR_POLL_INTERVAL", "50ms")

	cfg := load(t)

	if cfg.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", cfg.BaudRate)
	}
	if !cfg.NoLog {
		t.Error("NoLog should be set from the environment")
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("PollInterval = %v, want 50ms", cfg.PollInterval)
	}
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("SERIAL_MONITOR_PORT", "/dev/ttyS1")

	cfg := load(t, "--port", "COM4")

	if cfg.Port != "COM4" {
		t.Errorf("Port = %q, want COM4", cfg.Port)
	}
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Configuration)
		wantErr string
	}{
		{"defaults", func(*Configuration) {}, ""},
		{"windows port", func(c *Configuration) { c.Port = "COM3" }, ""},
		{"lowercase com port", func(c *Configuration) { c.Port = "com7" }, ""},
		{"bad port", func(c *Configuration) { c.Port = "/tmp/socket" }, "port"},
		{"empty port", func(c *Configuration) { c.Port = "" }, "port"},
		{"uppercase device path", func(c *Configuration) { c.Port = "/DEV/TTYUSB0" }, "port"},
		{"unsupported baud", func(c *Configuration) { c.BaudRate = 12345 }, "baud"},
		{"data bits", func(c *Configuration) { c.DataBits = 9 }, "data bits"},
		{"stop bits", func(c *Configuration) { c.StopBits = 3 }, "stop bits"},
		{"parity", func(c *Configuration) { c.Parity = "sometimes" }, "parity"},
		{"empty log file", func(c *Configuration) { c.LogFile = " " }, "log file"},
		{"empty log file without logging", func(c *Configuration) { c.LogFile = ""; c.NoLog = true }, ""},
		{"negative history", func(c *Configuration) { c.HistoryLimit = -1 }, "history"},
		{"poll too fast", func(c *Configuration) { c.PollInterval = time.Millisecond }, "poll interval"},
		{"poll too slow", func(c *Configuration) { c.PollInterval = 2 * time.Second }, "poll interval"},
		{"poll at bounds", func(c *Configuration) { c.PollInterval = MaxPollInterval }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfiguration_SessionLogPath(t *testing.T) {
	cfg := Default()
	if got := cfg.SessionLogPath(); got != DefaultLogFile {
		t.Errorf("SessionLogPath() = %q, want %q", got, DefaultLogFile)
	}
	cfg.NoLog = true
	if got := cfg.SessionLogPath(); got != "" {
		t.Errorf("SessionLogPath() with NoLog = %q, want empty", got)
	}
}

func TestConfiguration_Serial(t *testing.T) {
	cfg := Default()
	cfg.Port = "COM9"
	sc := cfg.Serial()
	if sc.Port != "COM9" || sc.BaudRate != cfg.BaudRate || sc.Parity != "none" {
		t.Errorf("Serial() = %+v", sc)
	}
}
