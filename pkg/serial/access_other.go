//go:build !unix

package serial

import (
	"fmt"
	"os"
	"strings"
)

// CheckAccess reports why path may not be usable as a device. COM ports are
// not visible in the filesystem and are left to Open.
func CheckAccess(path string) error {
	if strings.HasPrefix(strings.ToLower(path), "com") {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}
	return nil
}
