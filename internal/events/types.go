package events

// Event type constants for kelindar/event.
const (
	TypeProbeStarted uint32 = iota + 1
	TypeDeviceProbed
	TypeProbeFailed
	TypeSelectionCompleted
	TypeDeviceChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ProbeStartedEvent is published when a probe run begins.
type ProbeStartedEvent struct {
	DeviceCount int    `json:"device_count" example:"2" doc:"Number of video input devices to probe"`
	Timestamp   string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ProbeStartedEvent.
func (e ProbeStartedEvent) Type() uint32 { return TypeProbeStarted }

// DeviceProbedEvent reports the capabilities read from one device.
// Focus fields are zero when HasFocusDistance is false.
type DeviceProbedEvent struct {
	DeviceID         string  `json:"device_id" example:"usb-046d_C920-video-index0" doc:"Stable device identifier"`
	CapabilitySets   int     `json:"capability_sets" example:"1" doc:"Number of capability sets (one per track)"`
	HasFocusDistance bool    `json:"has_focus_distance" doc:"Whether the device reports a focus distance range"`
	FocusMin         float64 `json:"focus_min" doc:"Minimum focus distance"`
	FocusMax         float64 `json:"focus_max" doc:"Maximum focus distance"`
	FocusStep        float64 `json:"focus_step" doc:"Focus distance step"`
	AutoFocus        bool    `json:"auto_focus" doc:"Whether the device offers an auto focus mode"`
	Timestamp        string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceProbedEvent.
func (e DeviceProbedEvent) Type() uint32 { return TypeDeviceProbed }

// ProbeFailedEvent reports a device that could not be probed.
type ProbeFailedEvent struct {
	DeviceID  string `json:"device_id" example:"usb-046d_C920-video-index0" doc:"Stable device identifier"`
	Error     string `json:"error" example:"device or resource busy" doc:"Probe failure"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ProbeFailedEvent.
func (e ProbeFailedEvent) Type() uint32 { return TypeProbeFailed }

// SelectionCompletedEvent is published when a selection run resolves.
type SelectionCompletedEvent struct {
	DeviceID         string  `json:"device_id,omitempty" doc:"Selected device, empty when there is no preference"`
	Selected         bool    `json:"selected" doc:"Whether a device was selected"`
	MinFocusDistance float64 `json:"min_focus_distance" doc:"Minimum focus distance of the selected device"`
	DeviceCount      int     `json:"device_count" doc:"Number of devices evaluated"`
	Timestamp        string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SelectionCompletedEvent.
func (e SelectionCompletedEvent) Type() uint32 { return TypeSelectionCompleted }

// DeviceChangedEvent represents a video device node appearing or disappearing.
type DeviceChangedEvent struct {
	Action     string `json:"action" example:"added" doc:"Action type: added, removed"`
	DevicePath string `json:"device_path" example:"/dev/video0" doc:"Path to the video device"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceChangedEvent.
func (e DeviceChangedEvent) Type() uint32 { return TypeDeviceChanged }
