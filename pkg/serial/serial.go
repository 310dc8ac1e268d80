// Package serial provides the line-oriented serial transport used by the monitor
package serial

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// ValidBaudRates lists the baud rates accepted on the command line
var ValidBaudRates = []int{300, 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

const (
	DefaultPort     = "/dev/ttyUSB0"
	DefaultBaudRate = 57600
)

// Config defines the configuration for a serial connection
type Config struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	StopBits int    `json:"stop_bits"`
	Parity   string `json:"parity"`
}

// DefaultConfig returns an 8N1 configuration on the default port
func DefaultConfig() Config {
	return Config{
		Port:     DefaultPort,
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "none",
	}
}

// Validate checks if the serial configuration is valid
func (c Config) Validate() error {
	if err := ValidatePort(c.Port); err != nil {
		return err
	}

	if err := ValidateBaudRate(c.BaudRate); err != nil {
		return err
	}

	if c.DataBits < 5 || c.DataBits > 8 {
		return fmt.Errorf("data bits must be between 5 and 8, got: %d", c.DataBits)
	}

	if c.StopBits < 1 || c.StopBits > 2 {
		return fmt.Errorf("stop bits must be 1 or 2, got: %d", c.StopBits)
	}

	switch c.Parity {
	case "none", "odd", "even", "mark", "space":
	default:
		return fmt.Errorf("invalid parity: %s", c.Parity)
	}

	return nil
}

// ValidatePort checks that name looks like a serial device: a /dev/tty* path
// or a COM port. Only the COM prefix ignores case.
func ValidatePort(name string) error {
	if name == "" {
		return fmt.Errorf("port cannot be empty")
	}

	if strings.HasPrefix(name, "/dev/tty") || strings.HasPrefix(strings.ToLower(name), "com") {
		return nil
	}
	return fmt.Errorf("invalid port %q: expected a /dev/tty* device or a COM port", name)
}

// ValidateBaudRate checks rate against ValidBaudRates
func ValidateBaudRate(rate int) error {
	for _, valid := range ValidBaudRates {
		if rate == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid baud rate: %d (supported: %s)", rate, baudRateList())
}

func baudRateList() string {
	parts := make([]string, len(ValidBaudRates))
	for i, rate := range ValidBaudRates {
		parts[i] = fmt.Sprintf("%d", rate)
	}
	return strings.Join(parts, ", ")
}

// Mode converts the configuration to go.bug.st/serial settings
func (c Config) Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: convertStopBits(c.StopBits),
		Parity:   convertParity(c.Parity),
	}
}

// String renders the configuration the way status lines show it, e.g. 57600 8-N-1
func (c Config) String() string {
	parity := "N"
	if c.Parity != "" {
		parity = strings.ToUpper(c.Parity[:1])
	}
	return fmt.Sprintf("%s %d %d-%s-%d", c.Port, c.BaudRate, c.DataBits, parity, c.StopBits)
}

// convertStopBits converts our stop bits format to go.bug.st/serial format
func convertStopBits(stopBits int) serial.StopBits {
	switch stopBits {
	case 2:
		return serial.TwoStopBits
	default:
		return serial.OneStopBit
	}
}

// convertParity converts our parity format to go.bug.st/serial format
func convertParity(parity string) serial.Parity {
	switch parity {
	case "odd":
		return serial.OddParity
	case "even":
		return serial.EvenParity
	case "mark":
		return serial.MarkParity
	case "space":
		return serial.SpaceParity
	default:
		return serial.NoParity
	}
}
