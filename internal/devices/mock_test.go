package devices

import (
	"context"
	"errors"
	"testing"

	"github.com/smazurov/focusselect/internal/camera"
)

const mockDevicesTOML = `
[[device]]
id = "front"
label = "Front camera"
focus = { min = 120, max = 1000, step = 10 }
focus_modes = ["manual", "continuous"]

[[device]]
id = "macro"
label = "Macro camera"
focus = { min = 30, max = 500, step = 5 }
torch = true

[[device]]
id = "busy"
fail = "open"
focus = { min = 1, max = 10, step = 1 }

[[device]]
id = "broken"
fail = "read"
focus = { min = 2, max = 10, step = 1 }

[[device]]
id = "mic"
kind = "audioinput"
`

func TestParseMockDevices(t *testing.T) {
	detector, err := ParseMockDevices([]byte(mockDevicesTOML))
	if err != nil {
		t.Fatalf("ParseMockDevices failed: %v", err)
	}

	devices, err := detector.EnumerateDevices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 5 {
		t.Fatalf("got %d devices, want 5", len(devices))
	}
	if devices[0].Label != "Front camera" || devices[0].Kind != camera.KindVideoInput {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[4].Kind != camera.KindAudioInput {
		t.Errorf("devices[4].Kind = %q, want audioinput", devices[4].Kind)
	}
}

func TestParseMockDevices_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed toml", "[[device]\nid = "},
		{"missing id", "[[device]]\nlabel = \"nameless\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMockDevices([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMockDetector_Selection(t *testing.T) {
	detector, err := ParseMockDevices([]byte(mockDevicesTOML))
	if err != nil {
		t.Fatal(err)
	}

	selector := camera.NewSelector(detector, detector)
	report := selector.Report(context.Background())

	if !report.Selected || report.SelectedID != "macro" {
		t.Fatalf("selected %q (ok=%v), want macro", report.SelectedID, report.Selected)
	}
	if len(report.Devices) != 4 {
		t.Errorf("probed %d devices, want 4 video inputs", len(report.Devices))
	}
	if open := detector.OpenSessions(); open != 0 {
		t.Errorf("%d sessions left open", open)
	}

	var probeErr *camera.ProbeError
	for _, d := range report.Devices {
		switch d.Device.ID {
		case "busy":
			if !errors.As(d.Err, &probeErr) || probeErr.Op != "open" {
				t.Errorf("busy: err = %v, want open ProbeError", d.Err)
			}
		case "broken":
			if !errors.As(d.Err, &probeErr) || probeErr.Op != "read" {
				t.Errorf("broken: err = %v, want read ProbeError", d.Err)
			}
		case "macro":
			if len(d.Capabilities) != 1 || d.Capabilities[0].Torch == nil || !*d.Capabilities[0].Torch {
				t.Errorf("macro capabilities = %+v, want torch", d.Capabilities)
			}
		}
	}
}

func TestMockDetector_CancelledContext(t *testing.T) {
	detector := NewMockDetector([]MockCamera{{ID: "A", Focus: &MockRange{Min: 1, Max: 2, Step: 1}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := detector.OpenSession(ctx, camera.VideoDevice{ID: "A"}); !errors.Is(err, context.Canceled) {
		t.Errorf("OpenSession error = %v, want context.Canceled", err)
	}
}

func TestMockDetector_StopIdempotent(t *testing.T) {
	detector := NewMockDetector([]MockCamera{{ID: "A"}})

	session, err := detector.OpenSession(context.Background(), camera.VideoDevice{ID: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if detector.OpenSessions() != 1 {
		t.Fatalf("OpenSessions() = %d, want 1", detector.OpenSessions())
	}

	for _, track := range session.Tracks() {
		track.Stop()
		track.Stop()
	}
	if detector.OpenSessions() != 0 {
		t.Errorf("OpenSessions() = %d after stop, want 0", detector.OpenSessions())
	}
}
