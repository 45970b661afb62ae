package camera

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smazurov/focusselect/internal/events"
)

// Publisher receives probe telemetry. *events.Bus satisfies it.
type Publisher interface {
	Publish(ev events.Event)
}

// Selector probes capture devices and picks the one with the closest focus.
// It holds no state between calls.
type Selector struct {
	enumerator DeviceEnumerator
	sessions   SessionProvider
	logger     *slog.Logger
	publisher  Publisher
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sets the sink for probe events.
func WithPublisher(publisher Publisher) Option {
	return func(s *Selector) {
		s.publisher = publisher
	}
}

// NewSelector creates a selector over the given collaborators. Either may be
// nil: a nil enumerator lists no devices, a nil session provider fails every probe.
func NewSelector(enumerator DeviceEnumerator, sessions SessionProvider, opts ...Option) *Selector {
	s := &Selector{
		enumerator: enumerator,
		sessions:   sessions,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeviceReport is the outcome of probing a single device.
type DeviceReport struct {
	Device        VideoDevice
	Capabilities  []CapabilitySet
	FocusDistance *FocusDistance
	AutoFocus     bool
	Err           error // non-nil when the probe failed
}

// Report is the outcome of a full probe run.
type Report struct {
	Devices    []DeviceReport
	Index      *CapabilityIndex
	SelectedID string
	Selected   bool
	Focus      FocusDistance // focus range of the selected device
}

// SelectBestFocusDevice probes every video input device and returns the ID
// of the one with the smallest minimum focus distance. ok is false when no
// device reports a focus distance, including when none can be enumerated.
func (s *Selector) SelectBestFocusDevice(ctx context.Context) (id string, ok bool) {
	report := s.Report(ctx)
	return report.SelectedID, report.Selected
}

// Report probes every video input device and returns the capability index,
// per-device results and the selection.
func (s *Selector) Report(ctx context.Context) Report {
	devices := s.ListVideoInputDevices(ctx)
	s.publish(events.ProbeStartedEvent{DeviceCount: len(devices), Timestamp: timestamp()})

	report := Report{
		Devices: make([]DeviceReport, 0, len(devices)),
		Index:   NewCapabilityIndex(),
	}

	// Sequential on purpose: most hardware allows one open capture at a time.
	for _, device := range devices {
		sets, err := s.probe(ctx, device)
		report.Index.Set(device.ID, sets)

		result := DeviceReport{Device: device, Capabilities: sets, Err: err}
		if err != nil {
			s.logger.Warn("Device probe failed, skipping", "device_id", device.ID, "error", err)
			s.publish(events.ProbeFailedEvent{DeviceID: device.ID, Error: err.Error(), Timestamp: timestamp()})
		} else {
			result.FocusDistance = ExtractFocusDistance(sets)
			result.AutoFocus = HasAutoFocusMode(sets)
			s.logProbed(result)
		}
		report.Devices = append(report.Devices, result)
	}

	report.SelectedID, report.Focus, report.Selected = selectBest(report.Index)

	if report.Selected {
		s.logger.Info("Selected closest-focus camera",
			"device_id", report.SelectedID,
			"focus_min", report.Focus.Min,
			"focus_max", report.Focus.Max,
			"devices", len(devices))
	} else {
		s.logger.Info("No camera reports a focus distance", "devices", len(devices))
	}
	s.publish(events.SelectionCompletedEvent{
		DeviceID:         report.SelectedID,
		Selected:         report.Selected,
		MinFocusDistance: report.Focus.Min,
		DeviceCount:      len(devices),
		Timestamp:        timestamp(),
	})

	return report
}

// ListVideoInputDevices returns the enumerated video input devices, or an
// empty list when enumeration is unsupported or fails.
func (s *Selector) ListVideoInputDevices(ctx context.Context) []VideoDevice {
	if s.enumerator == nil {
		return []VideoDevice{}
	}

	devices, err := s.enumerator.EnumerateDevices(ctx)
	if err != nil {
		if errors.Is(err, ErrEnumerationUnavailable) {
			s.logger.Debug("Device enumeration unavailable")
		} else {
			s.logger.Warn("Failed to enumerate devices", "error", err)
		}
		return []VideoDevice{}
	}

	videoDevices := make([]VideoDevice, 0, len(devices))
	for _, device := range devices {
		if device.Kind == KindVideoInput {
			videoDevices = append(videoDevices, device)
		}
	}
	return videoDevices
}

// ReadCapabilities probes a single device. A DeviceID that matches no
// enumerated device yields ErrDeviceNotFound; probe failures are *ProbeError.
func (s *Selector) ReadCapabilities(ctx context.Context, ref DeviceRef) ([]CapabilitySet, error) {
	device, ok := ref.resolve(ctx, s)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrDeviceNotFound, ref)
	}
	return s.probe(ctx, device)
}

// ReadAllCapabilities probes every video input device. Devices that fail to
// probe are recorded with no capability sets.
func (s *Selector) ReadAllCapabilities(ctx context.Context) *CapabilityIndex {
	devices := s.ListVideoInputDevices(ctx)
	index := NewCapabilityIndex()

	for _, device := range devices {
		sets, err := s.probe(ctx, device)
		if err != nil {
			s.logger.Warn("Device probe failed, skipping", "device_id", device.ID, "error", err)
			s.publish(events.ProbeFailedEvent{DeviceID: device.ID, Error: err.Error(), Timestamp: timestamp()})
		}
		index.Set(device.ID, sets)
	}

	return index
}

// probe opens a session on the device, reads every track's capabilities and
// stops every track before returning, whatever the outcome.
func (s *Selector) probe(ctx context.Context, device VideoDevice) (sets []CapabilitySet, err error) {
	if s.sessions == nil {
		return nil, &ProbeError{DeviceID: device.ID, Op: "open", Err: errors.New("no session provider")}
	}

	op := "open"
	defer func() {
		if r := recover(); r != nil {
			sets = nil
			err = &ProbeError{DeviceID: device.ID, Op: op, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	session, openErr := s.sessions.OpenSession(ctx, device)

	var tracks []Track
	if session != nil {
		tracks = session.Tracks()
	}
	defer stopTracks(tracks)

	if openErr != nil {
		return nil, &ProbeError{DeviceID: device.ID, Op: op, Err: openErr}
	}
	op = "read"

	sets = make([]CapabilitySet, 0, len(tracks))
	for _, track := range tracks {
		capabilities, readErr := track.Capabilities()
		if readErr != nil {
			return nil, &ProbeError{DeviceID: device.ID, Op: "read", Err: readErr}
		}
		sets = append(sets, capabilities)
	}

	return sets, nil
}

func stopTracks(tracks []Track) {
	for _, track := range tracks {
		track.Stop()
	}
}

func (s *Selector) logProbed(result DeviceReport) {
	ev := events.DeviceProbedEvent{
		DeviceID:       result.Device.ID,
		CapabilitySets: len(result.Capabilities),
		AutoFocus:      result.AutoFocus,
		Timestamp:      timestamp(),
	}

	if focus := result.FocusDistance; focus != nil {
		ev.HasFocusDistance = true
		ev.FocusMin, ev.FocusMax, ev.FocusStep = focus.Min, focus.Max, focus.Step
		s.logger.Debug("Device reports focus distance",
			"device_id", result.Device.ID,
			"focus_min", focus.Min,
			"focus_max", focus.Max,
			"focus_step", focus.Step,
			"auto_focus", result.AutoFocus)
	} else {
		s.logger.Debug("Device reports no focus distance",
			"device_id", result.Device.ID,
			"capability_sets", len(result.Capabilities),
			"auto_focus", result.AutoFocus)
	}

	s.publish(ev)
}

func (s *Selector) publish(ev events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
