package models

// Device models
type DeviceInfo struct {
	DeviceID string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	Label    string `json:"label,omitempty" example:"HD Pro Webcam C920" doc:"Human-readable device name"`
	Path     string `json:"path,omitempty" example:"/dev/video0" doc:"Device node, when known"`
}

type DeviceListData struct {
	Devices []DeviceInfo `json:"devices" doc:"Video input devices in enumeration order"`
	Count   int          `json:"count" example:"2" doc:"Number of devices"`
}

type DeviceListResponse struct {
	Body DeviceListData
}

// Capability models
type Range struct {
	Min  float64 `json:"min" example:"0" doc:"Minimum value"`
	Max  float64 `json:"max" example:"250" doc:"Maximum value"`
	Step float64 `json:"step" example:"5" doc:"Step between values"`
}

type CapabilitySet struct {
	FocusDistance *Range   `json:"focus_distance,omitempty" doc:"Controllable focus range; smaller minimum means closer focus"`
	FocusMode     []string `json:"focus_mode,omitempty" example:"[\"manual\",\"auto\"]" doc:"Supported focus modes"`
	Zoom          *Range   `json:"zoom,omitempty" doc:"Zoom range"`
	Torch         *bool    `json:"torch,omitempty" doc:"Whether a torch is available"`
	Width         *Range   `json:"width,omitempty" doc:"Frame width range in pixels"`
	Height        *Range   `json:"height,omitempty" doc:"Frame height range in pixels"`
}

type DeviceCapabilitiesData struct {
	DeviceID      string          `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	Capabilities  []CapabilitySet `json:"capabilities" doc:"One capability set per active track"`
	FocusDistance *Range          `json:"focus_distance,omitempty" doc:"Focus range from the first set that reports one"`
	AutoFocus     bool            `json:"auto_focus" example:"true" doc:"Whether any set offers the auto focus mode"`
}

type DeviceCapabilitiesResponse struct {
	Body DeviceCapabilitiesData
}

type DeviceReport struct {
	DeviceInfo
	Capabilities  []CapabilitySet `json:"capabilities" doc:"One capability set per active track; empty when the probe failed"`
	FocusDistance *Range          `json:"focus_distance,omitempty" doc:"Focus range from the first set that reports one"`
	AutoFocus     bool            `json:"auto_focus" example:"false" doc:"Whether any set offers the auto focus mode"`
	Error         string          `json:"error,omitempty" example:"probe open usb-1: device busy" doc:"Probe failure, if any"`
}

type CapabilityReportData struct {
	Devices          []DeviceReport `json:"devices" doc:"Probe results in enumeration order"`
	SelectedID       string         `json:"selected_id,omitempty" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Device with the smallest minimum focus distance"`
	Selected         bool           `json:"selected" example:"true" doc:"Whether any device reported a focus distance"`
	MinFocusDistance *float64       `json:"min_focus_distance,omitempty" example:"0" doc:"Minimum focus distance of the selected device"`
}

type CapabilityReportResponse struct {
	Body CapabilityReportData
}

// Selection models
type SelectionData struct {
	Selected bool        `json:"selected" example:"true" doc:"False when no device reports a focus distance"`
	DeviceID string      `json:"device_id,omitempty" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Selected device identifier"`
	Device   *DeviceInfo `json:"device,omitempty" doc:"Selected device, matched against the enumerated list"`
}

type SelectionResponse struct {
	Body SelectionData
}

type LastSelectionData struct {
	Selected         bool    `json:"selected" example:"true" doc:"Whether the last run selected a device"`
	DeviceID         string  `json:"device_id,omitempty" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Selected device identifier"`
	MinFocusDistance float64 `json:"min_focus_distance" example:"0" doc:"Minimum focus distance of the selected device"`
	DeviceCount      int     `json:"device_count" example:"2" doc:"Video input devices seen by the run"`
	Timestamp        string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"When the run completed"`
}

type LastSelectionResponse struct {
	Body LastSelectionData
}
