package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/focusselect/internal/events"
)

// registerSSERoutes registers the probe event stream.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of probe runs, per-device results, selections and device changes",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"probe-started":       events.ProbeStartedEvent{},
		"device-probed":       events.DeviceProbedEvent{},
		"probe-failed":        events.ProbeFailedEvent{},
		"selection-completed": events.SelectionCompletedEvent{},
		"device-changed":      events.DeviceChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 32)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ProbeStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DeviceProbedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ProbeFailedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SelectionCompletedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DeviceChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
