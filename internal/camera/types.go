package camera

import (
	"context"
	"slices"
)

// DeviceKind tags what a device captures.
type DeviceKind string

// Device kinds.
const (
	KindVideoInput DeviceKind = "videoinput"
	KindAudioInput DeviceKind = "audioinput"
)

// VideoDevice is a capture device as reported by the enumeration provider.
type VideoDevice struct {
	ID    string // stable for the physical device within a session
	Kind  DeviceKind
	Label string
	Path  string
}

// FocusDistance is the focus range a device advertises.
type FocusDistance struct {
	Min  float64
	Max  float64
	Step float64
}

// Range is a numeric capability range.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Focus modes. Only FocusModeAuto is consulted, by HasAutoFocusMode.
const (
	FocusModeManual     = "manual"
	FocusModeAuto       = "auto"
	FocusModeSingleShot = "single-shot"
	FocusModeContinuous = "continuous"
)

// CapabilitySet describes the controls one active track exposes.
// Nil and empty fields mean the capability is not reported.
type CapabilitySet struct {
	FocusDistance *FocusDistance
	FocusMode     []string
	Zoom          *Range
	Torch         *bool
	Width         *Range
	Height        *Range
}

// HasFocusMode reports whether mode is among the set's focus modes.
func (c CapabilitySet) HasFocusMode(mode string) bool {
	return slices.Contains(c.FocusMode, mode)
}

// CapabilityIndex maps device IDs to their capability sets in enumeration
// order. A device whose probe failed is present with no sets.
type CapabilityIndex struct {
	ids     []string
	entries map[string][]CapabilitySet
}

// NewCapabilityIndex returns an empty index.
func NewCapabilityIndex() *CapabilityIndex {
	return &CapabilityIndex{entries: make(map[string][]CapabilitySet)}
}

// Set records the capability sets of a device, keeping its first position.
func (x *CapabilityIndex) Set(id string, sets []CapabilitySet) {
	if _, exists := x.entries[id]; !exists {
		x.ids = append(x.ids, id)
	}
	x.entries[id] = sets
}

// Get returns the capability sets recorded for a device.
func (x *CapabilityIndex) Get(id string) ([]CapabilitySet, bool) {
	sets, ok := x.entries[id]
	return sets, ok
}

// IDs returns device IDs in the order they were recorded.
func (x *CapabilityIndex) IDs() []string {
	return slices.Clone(x.ids)
}

// Len returns the number of devices in the index.
func (x *CapabilityIndex) Len() int {
	return len(x.ids)
}

// DeviceEnumerator lists capture-capable input devices.
type DeviceEnumerator interface {
	// EnumerateDevices returns ErrEnumerationUnavailable when the platform
	// cannot list devices.
	EnumerateDevices(ctx context.Context) ([]VideoDevice, error)
}

// SessionProvider opens capture sessions scoped to a single device.
type SessionProvider interface {
	// OpenSession may return a non-nil Session together with an error; the
	// caller still stops every track of such a session.
	OpenSession(ctx context.Context, device VideoDevice) (Session, error)
}

// Session is an open capture stream.
type Session interface {
	Tracks() []Track
}

// Track is one active track of a capture session.
type Track interface {
	Capabilities() (CapabilitySet, error)
	Stop()
}

// DeviceRef identifies the device to probe: either a VideoDevice or a
// DeviceID resolved through a fresh enumeration.
type DeviceRef interface {
	resolve(ctx context.Context, s *Selector) (VideoDevice, bool)
}

// DeviceID refers to a device by its identifier.
type DeviceID string

func (id DeviceID) resolve(ctx context.Context, s *Selector) (VideoDevice, bool) {
	return MatchDevice(s.ListVideoInputDevices(ctx), string(id))
}

func (d VideoDevice) resolve(context.Context, *Selector) (VideoDevice, bool) {
	return d, true
}
