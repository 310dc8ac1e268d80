//go:build unix

package serial

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckAccess reports why path may not be usable as a device: missing, or
// not readable and writable by the current user. A nil result does not
// guarantee that Open succeeds.
func CheckAccess(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("no read/write access to %s: %w", path, err)
	}
	return nil
}
