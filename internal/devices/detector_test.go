package devices

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/smazurov/focusselect/internal/camera"
)

func TestCapabilitiesFromControls(t *testing.T) {
	tests := []struct {
		name       string
		snap       ControlSnapshot
		wantFocus  *camera.FocusDistance
		wantModes  []string
		wantZoom   bool
		wantTorch  bool
		wantWidths *camera.Range
	}{
		{
			name:      "no controls",
			snap:      ControlSnapshot{},
			wantFocus: nil,
		},
		{
			name:      "manual focus only",
			snap:      ControlSnapshot{FocusAbsolute: &ControlRange{Min: 0, Max: 250, Step: 5}},
			wantFocus: &camera.FocusDistance{Min: 0, Max: 250, Step: 5},
			wantModes: []string{camera.FocusModeManual},
		},
		{
			name: "autofocus webcam",
			snap: ControlSnapshot{
				FocusAbsolute: &ControlRange{Min: 10, Max: 1023, Step: 1},
				FocusAuto:     true,
			},
			wantFocus: &camera.FocusDistance{Min: 10, Max: 1023, Step: 1},
			wantModes: []string{camera.FocusModeManual, camera.FocusModeAuto},
		},
		{
			name:      "autofocus without absolute focus",
			snap:      ControlSnapshot{FocusAuto: true, AutoFocusStart: true},
			wantModes: []string{camera.FocusModeManual, camera.FocusModeAuto, camera.FocusModeSingleShot},
		},
		{
			name: "zoom torch and sizes",
			snap: ControlSnapshot{
				Zoom:       &ControlRange{Min: 100, Max: 500, Step: 1},
				Torch:      true,
				FrameSizes: &FrameSizes{MinWidth: 320, MaxWidth: 1920, MinHeight: 240, MaxHeight: 1080},
			},
			wantZoom:   true,
			wantTorch:  true,
			wantWidths: &camera.Range{Min: 320, Max: 1920, Step: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := CapabilitiesFromControls(tt.snap)

			switch {
			case tt.wantFocus == nil && set.FocusDistance != nil:
				t.Errorf("FocusDistance = %+v, want nil", *set.FocusDistance)
			case tt.wantFocus != nil && set.FocusDistance == nil:
				t.Errorf("FocusDistance = nil, want %+v", *tt.wantFocus)
			case tt.wantFocus != nil && *set.FocusDistance != *tt.wantFocus:
				t.Errorf("FocusDistance = %+v, want %+v", *set.FocusDistance, *tt.wantFocus)
			}

			if !slices.Equal(set.FocusMode, tt.wantModes) {
				t.Errorf("FocusMode = %v, want %v", set.FocusMode, tt.wantModes)
			}
			if (set.Zoom != nil) != tt.wantZoom {
				t.Errorf("Zoom = %v, want present=%v", set.Zoom, tt.wantZoom)
			}
			if (set.Torch != nil && *set.Torch) != tt.wantTorch {
				t.Errorf("Torch = %v, want %v", set.Torch, tt.wantTorch)
			}
			if tt.wantWidths != nil {
				if set.Width == nil || *set.Width != *tt.wantWidths {
					t.Errorf("Width = %v, want %+v", set.Width, *tt.wantWidths)
				}
				if set.Height == nil {
					t.Error("Height = nil, want range")
				}
			}
		})
	}
}

func TestCapabilitiesFromControls_SelectableFocus(t *testing.T) {
	set := CapabilitiesFromControls(ControlSnapshot{FocusAbsolute: &ControlRange{Min: 30, Max: 200, Step: 1}})

	focus := camera.ExtractFocusDistance([]camera.CapabilitySet{set})
	if focus == nil || focus.Min != 30 {
		t.Fatalf("ExtractFocusDistance = %v, want min 30", focus)
	}
}

func TestHasTorchItem(t *testing.T) {
	tests := []struct {
		items []string
		want  bool
	}{
		{nil, false},
		{[]string{"Off", "Flash"}, false},
		{[]string{"Off", "Flash", "Torch"}, true},
		{[]string{"torch"}, true},
	}

	for _, tt := range tests {
		if got := hasTorchItem(tt.items); got != tt.want {
			t.Errorf("hasTorchItem(%v) = %v, want %v", tt.items, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	mockPath := filepath.Join(dir, "devices.toml")
	if err := os.WriteFile(mockPath, []byte("[[device]]\nid = \"A\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default backend", Options{}, false},
		{"v4l2 backend", Options{Backend: "V4L2"}, false},
		{"mock backend", Options{Backend: BackendMock, MockFile: mockPath}, false},
		{"mock without file", Options{Backend: BackendMock}, true},
		{"unknown backend", Options{Backend: "gstreamer"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && detector == nil {
				t.Fatal("New() returned nil detector")
			}
		})
	}

	var backendErr *UnknownBackendError
	if _, err := New(Options{Backend: "gstreamer"}); !errors.As(err, &backendErr) {
		t.Errorf("expected *UnknownBackendError, got %v", err)
	}
}

func TestResolveDevicePath(t *testing.T) {
	dir := t.TempDir()
	oldByID, oldByPath := byIDDir, byPathDir
	byIDDir = filepath.Join(dir, "by-id")
	byPathDir = filepath.Join(dir, "by-path")
	t.Cleanup(func() { byIDDir, byPathDir = oldByID, oldByPath })

	for _, d := range []string{byIDDir, byPathDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	usbID := "usb-046d_C920_ABC-video-index0"
	platformID := "platform-fe800000.csi-video-index0"
	for _, f := range []string{filepath.Join(byIDDir, usbID), filepath.Join(byPathDir, platformID)} {
		if err := os.WriteFile(f, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		device  camera.VideoDevice
		want    string
		wantErr bool
	}{
		{"enumerated path wins", camera.VideoDevice{ID: usbID, Path: "/dev/video4"}, "/dev/video4", false},
		{"dev path as id", camera.VideoDevice{ID: "/dev/video2"}, "/dev/video2", false},
		{"usb by-id", camera.VideoDevice{ID: usbID}, filepath.Join(byIDDir, usbID), false},
		{"platform by-path", camera.VideoDevice{ID: platformID}, filepath.Join(byPathDir, platformID), false},
		{"unknown id", camera.VideoDevice{ID: "usb-missing"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDevicePath(tt.device)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDevicePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveDevicePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
