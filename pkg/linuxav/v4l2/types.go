//go:build linux

package v4l2

import "errors"

// ErrControlNotSupported is returned when a device does not expose a control
// or reports it as disabled.
var ErrControlNotSupported = errors.New("control not supported")

// ErrDeviceClosed is returned by queries on a closed Device.
var ErrDeviceClosed = errors.New("device closed")

// DeviceInfo contains information about a V4L2 device.
type DeviceInfo struct {
	DevicePath string
	DeviceName string
	DeviceID   string // Stable identifier (from /dev/v4l/by-id/ or synthetic)
	Caps       uint32
}

// FormatInfo contains information about a supported pixel format.
type FormatInfo struct {
	PixelFormat uint32
	FormatName  string
	Emulated    bool
}

// SizeRange is the extent of frame sizes a device supports for a format.
type SizeRange struct {
	MinWidth  uint32
	MaxWidth  uint32
	MinHeight uint32
	MaxHeight uint32
}

// ControlType is the V4L2 control value type.
type ControlType uint32

// Control types.
const (
	ControlTypeInteger     ControlType = 1
	ControlTypeBoolean     ControlType = 2
	ControlTypeMenu        ControlType = 3
	ControlTypeButton      ControlType = 4
	ControlTypeInteger64   ControlType = 5
	ControlTypeClass       ControlType = 6
	ControlTypeString      ControlType = 7
	ControlTypeBitmask     ControlType = 8
	ControlTypeIntegerMenu ControlType = 9
)

// Control describes a single V4L2 control as reported by VIDIOC_QUERYCTRL.
type Control struct {
	ID      uint32
	Type    ControlType
	Name    string
	Minimum int32
	Maximum int32
	Step    int32
	Default int32
	Flags   uint32
}

// ReadOnly reports whether the control cannot be changed by applications.
func (c Control) ReadOnly() bool {
	return c.Flags&v4l2CtrlFlagReadOnly != 0
}

// Inactive reports whether the control is currently overridden by another
// control, e.g. manual focus while auto focus is on.
func (c Control) Inactive() bool {
	return c.Flags&v4l2CtrlFlagInactive != 0
}

// Camera and flash class control IDs (linux/v4l2-controls.h).
const (
	cidCameraClassBase = 0x009a0900
	cidFlashClassBase  = 0x009c0900

	CIDFocusAbsolute       uint32 = cidCameraClassBase + 10
	CIDFocusRelative       uint32 = cidCameraClassBase + 11
	CIDFocusAuto           uint32 = cidCameraClassBase + 12
	CIDZoomAbsolute        uint32 = cidCameraClassBase + 13
	CIDAutoFocusStart      uint32 = cidCameraClassBase + 28
	CIDAutoFocusStop       uint32 = cidCameraClassBase + 29
	CIDAutoFocusRange      uint32 = cidCameraClassBase + 31
	CIDFlashLEDMode        uint32 = cidFlashClassBase + 1
	CIDFlashTorchIntensity uint32 = cidFlashClassBase + 8
)

// Control flags.
const (
	v4l2CtrlFlagDisabled = 0x0001
	v4l2CtrlFlagGrabbed  = 0x0002
	v4l2CtrlFlagReadOnly = 0x0004
	v4l2CtrlFlagInactive = 0x0010
)

// Capability flags.
const (
	v4l2CapVideoCapture = 0x00000001
	v4l2CapDeviceCaps   = 0x80000000
)

// Format flags.
const (
	v4l2FmtFlagEmulated = 0x0002
)

// Common pixel formats.
const (
	v4l2PixFmtYUYV  = 0x56595559 // 'YUYV'
	v4l2PixFmtMJPEG = 0x47504A4D // 'MJPG'
	v4l2PixFmtH264  = 0x34363248 // 'H264'
	v4l2PixFmtNV12  = 0x3231564E // 'NV12'
)

// Frame size types.
const (
	v4l2FrmsizeTypeDiscrete   = 1
	v4l2FrmsizeTypeContinuous = 2
	v4l2FrmsizeTypeStepwise   = 3
)

// Buffer type.
const (
	v4l2BufTypeVideoCapture = 1
)
