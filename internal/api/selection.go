package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/focusselect/internal/api/models"
	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/metrics"
)

func (s *Server) registerSelectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-selection",
		Method:      http.MethodGet,
		Path:        "/api/selection",
		Summary:     "Select Camera",
		Description: "Probe every video input device and return the one with the smallest minimum focus distance. " +
			"`selected` is false when no device reports a focus distance.",
		Tags:     []string{"selection"},
		Security: withAuth(),
		Errors:   []int{401},
	}, func(ctx context.Context, _ *struct{}) (*models.SelectionResponse, error) {
		s.probeMu.Lock()
		defer s.probeMu.Unlock()

		id, ok := s.selector.SelectBestFocusDevice(ctx)
		if !ok {
			return &models.SelectionResponse{Body: models.SelectionData{Selected: false}}, nil
		}

		data := models.SelectionData{Selected: true, DeviceID: id}
		if device, found := camera.MatchDevice(s.selector.ListVideoInputDevices(ctx), id); found {
			info := toDeviceInfo(device)
			data.Device = &info
		} else {
			s.logger.Warn("Selected device vanished before it could be matched", "device_id", id)
		}

		return &models.SelectionResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-last-selection",
		Method:      http.MethodGet,
		Path:        "/api/selection/last",
		Summary:     "Last Selection",
		Description: "Outcome of the most recent selection run, without probing",
		Tags:        []string{"selection"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, _ *struct{}) (*models.LastSelectionResponse, error) {
		last := metrics.LastSelection()
		if last == nil {
			return nil, huma.Error404NotFound("No selection has run yet")
		}

		return &models.LastSelectionResponse{
			Body: models.LastSelectionData{
				Selected:         last.Selected,
				DeviceID:         last.DeviceID,
				MinFocusDistance: last.MinFocusDistance,
				DeviceCount:      last.DeviceCount,
				Timestamp:        last.Timestamp,
			},
		}, nil
	})
}
