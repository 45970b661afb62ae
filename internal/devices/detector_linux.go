//go:build linux

package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/pkg/linuxav/v4l2"
)

// V4L2Detector enumerates V4L2 capture nodes and probes their controls.
type V4L2Detector struct {
	logger *slog.Logger
}

// NewDetector creates a V4L2 backed detector.
func NewDetector() *V4L2Detector {
	return &V4L2Detector{logger: defaultLogger()}
}

// EnumerateDevices lists the V4L2 video capture devices on the system.
func (d *V4L2Detector) EnumerateDevices(_ context.Context) ([]camera.VideoDevice, error) {
	infos, err := v4l2.FindDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate V4L2 devices: %w", err)
	}

	devices := make([]camera.VideoDevice, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, camera.VideoDevice{
			ID:    info.DeviceID,
			Kind:  camera.KindVideoInput,
			Label: info.DeviceName,
			Path:  info.DevicePath,
		})
	}

	d.logger.Debug("Enumerated V4L2 devices", "count", len(devices))
	return devices, nil
}

// OpenSession opens the device node. The returned session has a single
// track backed by the open descriptor.
func (d *V4L2Detector) OpenSession(ctx context.Context, device camera.VideoDevice) (camera.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	devicePath, err := ResolveDevicePath(device)
	if err != nil {
		devicePath, err = v4l2.GetDevicePathByID(device.ID)
		if err != nil {
			return nil, err
		}
	}

	dev, err := v4l2.Open(devicePath)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Opened capture session", "device_id", device.ID, "path", devicePath)
	return &v4l2Session{track: &v4l2Track{dev: dev, deviceID: device.ID, logger: d.logger}}, nil
}

type v4l2Session struct {
	track *v4l2Track
}

func (s *v4l2Session) Tracks() []camera.Track {
	return []camera.Track{s.track}
}

type v4l2Track struct {
	dev      *v4l2.Device
	deviceID string
	logger   *slog.Logger
}

func (t *v4l2Track) Capabilities() (camera.CapabilitySet, error) {
	snap, err := readControls(t.dev, t.logger)
	if err != nil {
		return camera.CapabilitySet{}, err
	}
	return CapabilitiesFromControls(snap), nil
}

func (t *v4l2Track) Stop() {
	if err := t.dev.Close(); err != nil {
		t.logger.Warn("Failed to close capture device", "device_id", t.deviceID, "error", err)
	}
}

// readControls queries the focus, zoom and torch controls plus the frame
// size range of the first capture format. Unsupported controls are skipped.
func readControls(dev *v4l2.Device, logger *slog.Logger) (ControlSnapshot, error) {
	var snap ControlSnapshot

	lookup := func(id uint32) (*v4l2.Control, error) {
		ctrl, err := dev.QueryControl(id)
		if errors.Is(err, v4l2.ErrControlNotSupported) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query control 0x%08x: %w", id, err)
		}
		return &ctrl, nil
	}

	ctrl, err := lookup(v4l2.CIDFocusAbsolute)
	if err != nil {
		return snap, err
	}
	if ctrl != nil {
		snap.FocusAbsolute = &ControlRange{Min: ctrl.Minimum, Max: ctrl.Maximum, Step: ctrl.Step}
	}

	if ctrl, err = lookup(v4l2.CIDFocusAuto); err != nil {
		return snap, err
	}
	snap.FocusAuto = ctrl != nil

	if ctrl, err = lookup(v4l2.CIDAutoFocusStart); err != nil {
		return snap, err
	}
	snap.AutoFocusStart = ctrl != nil

	if ctrl, err = lookup(v4l2.CIDZoomAbsolute); err != nil {
		return snap, err
	}
	if ctrl != nil {
		snap.Zoom = &ControlRange{Min: ctrl.Minimum, Max: ctrl.Maximum, Step: ctrl.Step}
	}

	if ctrl, err = lookup(v4l2.CIDFlashTorchIntensity); err != nil {
		return snap, err
	}
	snap.Torch = ctrl != nil

	if !snap.Torch {
		if ctrl, err = lookup(v4l2.CIDFlashLEDMode); err != nil {
			return snap, err
		}
		if ctrl != nil {
			items, menuErr := dev.QueryMenu(*ctrl)
			if menuErr != nil {
				logger.Debug("Failed to read flash LED menu", "path", dev.Path(), "error", menuErr)
			}
			snap.Torch = hasTorchItem(items)
		}
	}

	// Frame sizes are informational; a driver that refuses to list them
	// does not fail the probe.
	formats, err := dev.Formats()
	if err != nil || len(formats) == 0 {
		logger.Debug("No capture formats listed", "path", dev.Path(), "error", err)
		return snap, nil
	}

	sizes, ok, err := dev.FrameSizeRange(formats[0].PixelFormat)
	if err != nil {
		logger.Debug("Failed to list frame sizes", "path", dev.Path(), "format", formats[0].FormatName, "error", err)
	} else if ok {
		snap.FrameSizes = &FrameSizes{
			MinWidth:  sizes.MinWidth,
			MaxWidth:  sizes.MaxWidth,
			MinHeight: sizes.MinHeight,
			MaxHeight: sizes.MaxHeight,
		}
	}

	return snap, nil
}
