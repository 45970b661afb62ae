//go:build linux

package v4l2

import (
	"errors"
	"syscall"
	"testing"
)

// TestErrnoComparison verifies that errors.Is works correctly with syscall.Errno.
// QueryControl and the enumeration loops rely on errors.Is to detect EINVAL and ENOTTY.
func TestErrnoComparison(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"EINVAL matches EINVAL", syscall.EINVAL, syscall.EINVAL, true},
		{"ENOTTY matches ENOTTY", syscall.ENOTTY, syscall.ENOTTY, true},
		{"EINVAL does not match ENOTTY", syscall.EINVAL, syscall.ENOTTY, false},
		{"EBUSY does not match EINVAL", syscall.EBUSY, syscall.EINVAL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errors.Is(tt.err, tt.target)
			if result != tt.expected {
				t.Errorf("errors.Is(%v, %v) = %v, want %v",
					tt.err, tt.target, result, tt.expected)
			}
		})
	}
}

func TestFormatFourCC(t *testing.T) {
	tests := []struct {
		name     string
		format   uint32
		expected string
	}{
		{"YUYV format", v4l2PixFmtYUYV, "YUYV"},
		{"MJPEG format", v4l2PixFmtMJPEG, "MJPG"},
		{"H264 format", v4l2PixFmtH264, "H264"},
		{"NV12 format", v4l2PixFmtNV12, "NV12"},
		{"mixed bytes", 0x01020304, "\x04\x03\x02\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatFourCC(tt.format)
			if result != tt.expected {
				t.Errorf("FormatFourCC(0x%08X) = %q, want %q", tt.format, result, tt.expected)
			}
		})
	}
}

func TestCstr(t *testing.T) {
	var buf [32]byte
	copy(buf[:], "Focus, Absolute")

	if got := cstr(buf[:]); got != "Focus, Absolute" {
		t.Errorf("cstr() = %q, want %q", got, "Focus, Absolute")
	}
	if got := cstr([]byte("no-terminator")); got != "no-terminator" {
		t.Errorf("cstr() = %q, want %q", got, "no-terminator")
	}
}

func TestControlFromQuery(t *testing.T) {
	query := v4l2Queryctrl{
		id:           CIDFocusAbsolute,
		typ:          uint32(ControlTypeInteger),
		minimum:      0,
		maximum:      250,
		step:         5,
		defaultValue: 0,
		flags:        v4l2CtrlFlagInactive,
	}
	copy(query.name[:], "Focus, Absolute")

	ctrl := controlFromQuery(&query)

	if ctrl.ID != CIDFocusAbsolute {
		t.Errorf("ID = 0x%08x, want 0x%08x", ctrl.ID, CIDFocusAbsolute)
	}
	if ctrl.Type != ControlTypeInteger {
		t.Errorf("Type = %d, want %d", ctrl.Type, ControlTypeInteger)
	}
	if ctrl.Name != "Focus, Absolute" {
		t.Errorf("Name = %q", ctrl.Name)
	}
	if ctrl.Minimum != 0 || ctrl.Maximum != 250 || ctrl.Step != 5 {
		t.Errorf("range = %d..%d step %d, want 0..250 step 5", ctrl.Minimum, ctrl.Maximum, ctrl.Step)
	}
	if !ctrl.Inactive() {
		t.Error("expected control to be inactive")
	}
	if ctrl.ReadOnly() {
		t.Error("expected control to be writable")
	}
}

func TestExtendSizeRange(t *testing.T) {
	first := SizeRange{MinWidth: 640, MaxWidth: 640, MinHeight: 480, MaxHeight: 480}
	second := SizeRange{MinWidth: 1920, MaxWidth: 1920, MinHeight: 1080, MaxHeight: 1080}
	third := SizeRange{MinWidth: 320, MaxWidth: 320, MinHeight: 240, MaxHeight: 240}

	acc := extendSizeRange(SizeRange{}, false, first)
	if acc != first {
		t.Fatalf("uninitialized accumulator = %+v, want %+v", acc, first)
	}

	acc = extendSizeRange(acc, true, second)
	acc = extendSizeRange(acc, true, third)

	want := SizeRange{MinWidth: 320, MaxWidth: 1920, MinHeight: 240, MaxHeight: 1080}
	if acc != want {
		t.Errorf("extendSizeRange() = %+v, want %+v", acc, want)
	}
}

func TestOpenMissingDevice(t *testing.T) {
	if _, err := Open("/dev/video-does-not-exist"); err == nil {
		t.Fatal("expected error opening a missing device")
	}
}

func TestClosedDeviceQueries(t *testing.T) {
	dev := &Device{path: "/dev/video0", fd: -1}

	if _, err := dev.QueryControl(CIDFocusAbsolute); !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("QueryControl on closed device: got %v, want ErrDeviceClosed", err)
	}
	if err := dev.Close(); err != nil {
		t.Errorf("Close on closed device: %v", err)
	}
}

func TestFindDevices(t *testing.T) {
	devices, err := FindDevices()
	if err != nil {
		t.Fatalf("FindDevices failed: %v", err)
	}

	// Hosts without cameras are fine; every reported device must be a capture node.
	for _, dev := range devices {
		if dev.Caps&v4l2CapVideoCapture == 0 {
			t.Errorf("device %s reported without capture capability", dev.DevicePath)
		}
		if dev.DeviceID == "" {
			t.Errorf("device %s has empty stable ID", dev.DevicePath)
		}
	}
}
