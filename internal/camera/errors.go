package camera

import (
	"errors"
	"fmt"
)

var (
	// ErrEnumerationUnavailable is returned by enumerators on platforms that
	// cannot list capture devices. Selectors treat it as an empty list.
	ErrEnumerationUnavailable = errors.New("device enumeration unavailable")

	// ErrDeviceNotFound is returned when a device ID does not match any
	// enumerated device.
	ErrDeviceNotFound = errors.New("device not found")
)

// ProbeError reports a device whose capture session could not be opened or
// whose capabilities could not be read.
type ProbeError struct {
	DeviceID string
	Op       string // "open" or "read"
	Err      error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s %s: %v", e.Op, e.DeviceID, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
