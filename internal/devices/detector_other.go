//go:build !linux

package devices

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smazurov/focusselect/internal/camera"
)

// V4L2Detector reports enumeration as unavailable outside Linux.
type V4L2Detector struct {
	logger *slog.Logger
}

// NewDetector creates a detector that lists no devices.
func NewDetector() *V4L2Detector {
	return &V4L2Detector{logger: defaultLogger()}
}

// EnumerateDevices always returns camera.ErrEnumerationUnavailable.
func (d *V4L2Detector) EnumerateDevices(_ context.Context) ([]camera.VideoDevice, error) {
	return nil, camera.ErrEnumerationUnavailable
}

// OpenSession always fails; capture sessions need V4L2.
func (d *V4L2Detector) OpenSession(_ context.Context, device camera.VideoDevice) (camera.Session, error) {
	d.logger.Debug("Capture sessions require V4L2", "device_id", device.ID)
	return nil, errors.New("capture sessions require V4L2")
}
