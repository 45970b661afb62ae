package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/focusselect/internal/camera"
)

// MockRange is a numeric range in a mock device file.
type MockRange struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

// MockCamera describes a simulated capture device.
type MockCamera struct {
	ID         string     `toml:"id"`
	Label      string     `toml:"label"`
	Kind       string     `toml:"kind"` // "videoinput" (default) or "audioinput"
	Focus      *MockRange `toml:"focus"`
	FocusModes []string   `toml:"focus_modes"`
	Zoom       *MockRange `toml:"zoom"`
	Torch      bool       `toml:"torch"`
	Fail       string     `toml:"fail"` // "open" or "read" makes probes fail there
}

type mockFile struct {
	Devices []MockCamera `toml:"device"`
}

// MockDetector serves simulated devices, for hosts without cameras.
type MockDetector struct {
	cameras []MockCamera
	logger  *slog.Logger

	mu   sync.Mutex
	open int
}

// NewMockDetector creates a detector over the given cameras.
func NewMockDetector(cameras []MockCamera) *MockDetector {
	return &MockDetector{cameras: cameras, logger: defaultLogger()}
}

// LoadMockDetector reads [[device]] tables from a TOML file.
func LoadMockDetector(path string) (*MockDetector, error) {
	if path == "" {
		return nil, errors.New("mock backend requires a device file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock device file: %w", err)
	}

	return ParseMockDevices(data)
}

// ParseMockDevices decodes a TOML mock device list.
func ParseMockDevices(data []byte) (*MockDetector, error) {
	var file mockFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mock device file: %w", err)
	}

	for i, cam := range file.Devices {
		if cam.ID == "" {
			return nil, fmt.Errorf("mock device %d has no id", i)
		}
	}

	return NewMockDetector(file.Devices), nil
}

// OpenSessions returns the number of sessions not yet stopped.
func (m *MockDetector) OpenSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// EnumerateDevices lists the configured cameras.
func (m *MockDetector) EnumerateDevices(_ context.Context) ([]camera.VideoDevice, error) {
	devices := make([]camera.VideoDevice, 0, len(m.cameras))
	for _, cam := range m.cameras {
		kind := camera.KindVideoInput
		if cam.Kind == string(camera.KindAudioInput) {
			kind = camera.KindAudioInput
		}
		devices = append(devices, camera.VideoDevice{ID: cam.ID, Kind: kind, Label: cam.Label})
	}
	return devices, nil
}

// OpenSession opens a simulated session on a configured camera.
func (m *MockDetector) OpenSession(ctx context.Context, device camera.VideoDevice) (camera.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cam, ok := m.lookup(device.ID)
	if !ok {
		return nil, fmt.Errorf("mock device %s not configured", device.ID)
	}
	if cam.Fail == "open" {
		return nil, errors.New("device busy")
	}

	m.mu.Lock()
	m.open++
	m.mu.Unlock()

	m.logger.Debug("Opened mock session", "device_id", device.ID)
	return &mockSession{track: &mockTrack{owner: m, cam: cam}}, nil
}

func (m *MockDetector) lookup(id string) (MockCamera, bool) {
	for _, cam := range m.cameras {
		if cam.ID == id {
			return cam, true
		}
	}
	return MockCamera{}, false
}

func (m *MockDetector) release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open--
}

type mockSession struct {
	track *mockTrack
}

func (s *mockSession) Tracks() []camera.Track {
	return []camera.Track{s.track}
}

type mockTrack struct {
	owner   *MockDetector
	cam     MockCamera
	stopped sync.Once
}

func (t *mockTrack) Capabilities() (camera.CapabilitySet, error) {
	if t.cam.Fail == "read" {
		return camera.CapabilitySet{}, errors.New("capabilities unavailable")
	}

	set := camera.CapabilitySet{FocusMode: t.cam.FocusModes}
	if f := t.cam.Focus; f != nil {
		set.FocusDistance = &camera.FocusDistance{Min: f.Min, Max: f.Max, Step: f.Step}
	}
	if z := t.cam.Zoom; z != nil {
		set.Zoom = &camera.Range{Min: z.Min, Max: z.Max, Step: z.Step}
	}
	if t.cam.Torch {
		torch := true
		set.Torch = &torch
	}
	return set, nil
}

func (t *mockTrack) Stop() {
	t.stopped.Do(t.owner.release)
}
