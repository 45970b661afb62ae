package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/focusselect/internal/api/models"
	"github.com/smazurov/focusselect/internal/camera"
)

// DevicePathInput is the device path parameter.
type DevicePathInput struct {
	DeviceID string `path:"device_id" minLength:"1" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
}

func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List video input devices in enumeration order",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, _ *struct{}) (*models.DeviceListResponse, error) {
		s.probeMu.Lock()
		devices := s.selector.ListVideoInputDevices(ctx)
		s.probeMu.Unlock()

		infos := make([]models.DeviceInfo, 0, len(devices))
		for _, d := range devices {
			infos = append(infos, toDeviceInfo(d))
		}

		return &models.DeviceListResponse{
			Body: models.DeviceListData{Devices: infos, Count: len(infos)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-device-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/devices/{device_id}/capabilities",
		Summary:     "Device Capabilities",
		Description: "Probe one device and return the capability set of each active track",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 503},
	}, func(ctx context.Context, input *DevicePathInput) (*models.DeviceCapabilitiesResponse, error) {
		s.probeMu.Lock()
		sets, err := s.selector.ReadCapabilities(ctx, camera.DeviceID(input.DeviceID))
		s.probeMu.Unlock()

		if errors.Is(err, camera.ErrDeviceNotFound) {
			return nil, huma.Error404NotFound("Device not found: " + input.DeviceID)
		}
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("Device probe failed", err)
		}

		return &models.DeviceCapabilitiesResponse{
			Body: models.DeviceCapabilitiesData{
				DeviceID:      input.DeviceID,
				Capabilities:  toCapabilitySets(sets),
				FocusDistance: toFocusRange(camera.ExtractFocusDistance(sets)),
				AutoFocus:     camera.HasAutoFocusMode(sets),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/capabilities",
		Summary:     "Capability Report",
		Description: "Probe every video input device and report capabilities with the selection",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, _ *struct{}) (*models.CapabilityReportResponse, error) {
		s.probeMu.Lock()
		report := s.selector.Report(ctx)
		s.probeMu.Unlock()

		return &models.CapabilityReportResponse{Body: toCapabilityReport(report)}, nil
	})
}
