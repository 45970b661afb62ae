package devices

import (
	"log/slog"
	"strings"

	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/logging"
)

// Backend names accepted by New.
const (
	BackendV4L2 = "v4l2"
	BackendMock = "mock"
)

// Detector enumerates capture devices and opens probe sessions on them.
type Detector interface {
	camera.DeviceEnumerator
	camera.SessionProvider
}

// Options selects and configures a device backend.
type Options struct {
	Backend  string // "v4l2" (default) or "mock"
	MockFile string // TOML device list for the mock backend
}

// New creates the configured device backend.
func New(opts Options) (Detector, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendV4L2:
		return NewDetector(), nil
	case BackendMock:
		return LoadMockDetector(opts.MockFile)
	default:
		return nil, &UnknownBackendError{Backend: opts.Backend}
	}
}

// UnknownBackendError is returned by New for an unsupported backend name.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return "unknown device backend: " + e.Backend
}

// ControlRange is an integer V4L2 control range.
type ControlRange struct {
	Min  int32
	Max  int32
	Step int32
}

// FrameSizes is the extent of frame sizes of a capture format.
type FrameSizes struct {
	MinWidth  uint32
	MaxWidth  uint32
	MinHeight uint32
	MaxHeight uint32
}

// ControlSnapshot holds the controls a probe read from a device.
type ControlSnapshot struct {
	FocusAbsolute  *ControlRange
	FocusAuto      bool
	AutoFocusStart bool
	Zoom           *ControlRange
	Torch          bool
	FrameSizes     *FrameSizes
}

// CapabilitiesFromControls maps V4L2 controls onto a capability set.
// FOCUS_ABSOLUTE units are driver-defined; smaller values mean closer focus
// on UVC cameras, which keeps the minimum comparable across devices.
func CapabilitiesFromControls(snap ControlSnapshot) camera.CapabilitySet {
	var set camera.CapabilitySet

	if r := snap.FocusAbsolute; r != nil {
		set.FocusDistance = &camera.FocusDistance{
			Min:  float64(r.Min),
			Max:  float64(r.Max),
			Step: float64(r.Step),
		}
	}

	if snap.FocusAbsolute != nil || snap.FocusAuto {
		set.FocusMode = append(set.FocusMode, camera.FocusModeManual)
	}
	if snap.FocusAuto {
		set.FocusMode = append(set.FocusMode, camera.FocusModeAuto)
	}
	if snap.AutoFocusStart {
		set.FocusMode = append(set.FocusMode, camera.FocusModeSingleShot)
	}

	if r := snap.Zoom; r != nil {
		set.Zoom = &camera.Range{Min: float64(r.Min), Max: float64(r.Max), Step: float64(r.Step)}
	}

	if snap.Torch {
		torch := true
		set.Torch = &torch
	}

	if fs := snap.FrameSizes; fs != nil {
		set.Width = &camera.Range{Min: float64(fs.MinWidth), Max: float64(fs.MaxWidth), Step: 1}
		set.Height = &camera.Range{Min: float64(fs.MinHeight), Max: float64(fs.MaxHeight), Step: 1}
	}

	return set
}

func defaultLogger() *slog.Logger {
	return logging.GetLogger("devices")
}

// hasTorchItem reports whether a flash LED mode menu offers torch mode.
func hasTorchItem(items []string) bool {
	for _, item := range items {
		if strings.EqualFold(item, "torch") {
			return true
		}
	}
	return false
}
