package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/smazurov/focusselect/internal/api/models"
	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/devices"
	"github.com/smazurov/focusselect/internal/events"
	"github.com/smazurov/focusselect/internal/metrics"
)

var testCameras = []devices.MockCamera{
	{ID: "front", Label: "Front camera", Focus: &devices.MockRange{Min: 100, Max: 1000, Step: 10}},
	{ID: "macro", Label: "Macro camera", Focus: &devices.MockRange{Min: 20, Max: 500, Step: 5}, FocusModes: []string{"manual", "auto"}},
	{ID: "busy", Label: "Busy camera", Fail: "open"},
	{ID: "fixed", Label: "Fixed focus camera"},
}

func newTestServer(t *testing.T, cameras []devices.MockCamera, opts Options) (humatest.TestAPI, *Server, *devices.MockDetector) {
	t.Helper()
	detector := devices.NewMockDetector(cameras)
	opts.Selector = camera.NewSelector(detector, detector, camera.WithLogger(slog.New(slog.DiscardHandler)))
	server := NewServer(&opts)
	return humatest.Wrap(t, server.GetAPI()), server, detector
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	api, _, _ := newTestServer(t, nil, Options{})

	resp := api.Get("/api/health")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if body := decode[models.HealthData](t, resp); body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}

func TestListDevices(t *testing.T) {
	cameras := append([]devices.MockCamera{{ID: "mic", Kind: "audioinput"}}, testCameras...)
	api, _, _ := newTestServer(t, cameras, Options{})

	resp := api.Get("/api/devices")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	body := decode[models.DeviceListData](t, resp)
	if body.Count != 4 || len(body.Devices) != 4 {
		t.Fatalf("count = %d, want 4 video inputs", body.Count)
	}
	if body.Devices[0].DeviceID != "front" || body.Devices[0].Label != "Front camera" {
		t.Errorf("devices[0] = %+v, want front", body.Devices[0])
	}
}

func TestDeviceCapabilities(t *testing.T) {
	api, _, detector := newTestServer(t, testCameras, Options{})

	tests := []struct {
		name       string
		deviceID   string
		wantStatus int
		wantFocus  *models.Range
		wantAuto   bool
	}{
		{"focus and auto", "macro", http.StatusOK, &models.Range{Min: 20, Max: 500, Step: 5}, true},
		{"no focus", "fixed", http.StatusOK, nil, false},
		{"unknown device", "missing", http.StatusNotFound, nil, false},
		{"probe failure", "busy", http.StatusServiceUnavailable, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/api/devices/" + tt.deviceID + "/capabilities")
			if resp.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.Code, tt.wantStatus, resp.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			body := decode[models.DeviceCapabilitiesData](t, resp)
			if len(body.Capabilities) != 1 {
				t.Fatalf("got %d capability sets, want 1", len(body.Capabilities))
			}
			if body.AutoFocus != tt.wantAuto {
				t.Errorf("auto_focus = %v, want %v", body.AutoFocus, tt.wantAuto)
			}
			switch {
			case tt.wantFocus == nil && body.FocusDistance != nil:
				t.Errorf("focus_distance = %+v, want none", *body.FocusDistance)
			case tt.wantFocus != nil && (body.FocusDistance == nil || *body.FocusDistance != *tt.wantFocus):
				t.Errorf("focus_distance = %v, want %+v", body.FocusDistance, *tt.wantFocus)
			}
		})
	}

	if open := detector.OpenSessions(); open != 0 {
		t.Errorf("%d sessions left open", open)
	}
}

func TestCapabilityReport(t *testing.T) {
	api, _, detector := newTestServer(t, testCameras, Options{})

	resp := api.Get("/api/capabilities")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	body := decode[models.CapabilityReportData](t, resp)
	if !body.Selected || body.SelectedID != "macro" {
		t.Errorf("selected = %q (%v), want macro", body.SelectedID, body.Selected)
	}
	if body.MinFocusDistance == nil || *body.MinFocusDistance != 20 {
		t.Errorf("min_focus_distance = %v, want 20", body.MinFocusDistance)
	}
	if len(body.Devices) != len(testCameras) {
		t.Fatalf("got %d device reports, want %d", len(body.Devices), len(testCameras))
	}
	if body.Devices[2].DeviceID != "busy" || body.Devices[2].Error == "" {
		t.Errorf("busy report = %+v, want an error", body.Devices[2])
	}
	if len(body.Devices[2].Capabilities) != 0 {
		t.Errorf("busy report has %d capability sets, want 0", len(body.Devices[2].Capabilities))
	}
	if open := detector.OpenSessions(); open != 0 {
		t.Errorf("%d sessions left open", open)
	}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		name     string
		cameras  []devices.MockCamera
		selected bool
		deviceID string
	}{
		{"closest focus wins", testCameras, true, "macro"},
		{"no focus capability", []devices.MockCamera{{ID: "fixed"}}, false, ""},
		{"no devices", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _, _ := newTestServer(t, tt.cameras, Options{})

			resp := api.Get("/api/selection")
			if resp.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.Code)
			}

			body := decode[models.SelectionData](t, resp)
			if body.Selected != tt.selected || body.DeviceID != tt.deviceID {
				t.Errorf("selection = %+v, want selected=%v id=%q", body, tt.selected, tt.deviceID)
			}
			if tt.selected && (body.Device == nil || body.Device.DeviceID != tt.deviceID) {
				t.Errorf("device = %+v, want matched %q", body.Device, tt.deviceID)
			}
			if !tt.selected && body.Device != nil {
				t.Errorf("device = %+v, want none", body.Device)
			}
		})
	}
}

func TestLastSelection(t *testing.T) {
	api, _, _ := newTestServer(t, nil, Options{})

	metrics.RecordSelection(metrics.Selection{
		DeviceID:         "macro",
		Selected:         true,
		MinFocusDistance: 20,
		DeviceCount:      3,
		Timestamp:        "2025-01-27T10:30:00Z",
	})

	resp := api.Get("/api/selection/last")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	body := decode[models.LastSelectionData](t, resp)
	if body.DeviceID != "macro" || !body.Selected || body.DeviceCount != 3 {
		t.Errorf("last selection = %+v", body)
	}
}

func TestRunSelection(t *testing.T) {
	_, server, detector := newTestServer(t, testCameras, Options{})

	id, ok := server.RunSelection(t.Context())
	if !ok || id != "macro" {
		t.Errorf("RunSelection() = %q, %v, want macro, true", id, ok)
	}
	if open := detector.OpenSessions(); open != 0 {
		t.Errorf("%d sessions left open", open)
	}
}

func TestBasicAuth(t *testing.T) {
	api, _, _ := newTestServer(t, testCameras, Options{AuthUsername: "admin", AuthPassword: "secret"})

	basic := func(creds string) string {
		return base64.StdEncoding.EncodeToString([]byte(creds))
	}

	tests := []struct {
		name       string
		path       string
		headers    []any
		wantStatus int
	}{
		{"health needs no auth", "/api/health", nil, http.StatusOK},
		{"missing credentials", "/api/devices", nil, http.StatusUnauthorized},
		{"wrong scheme", "/api/devices", []any{"Authorization: Bearer token"}, http.StatusUnauthorized},
		{"bad base64", "/api/devices", []any{"Authorization: Basic !!!"}, http.StatusUnauthorized},
		{"wrong password", "/api/devices", []any{"Authorization: Basic " + basic("admin:nope")}, http.StatusUnauthorized},
		{"valid header", "/api/devices", []any{"Authorization: Basic " + basic("admin:secret")}, http.StatusOK},
		{"valid query", "/api/devices?auth=" + basic("admin:secret"), nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get(tt.path, tt.headers...)
			if resp.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized && resp.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	_, server, _ := newTestServer(t, nil, Options{})

	rec := httptest.NewRecorder()
	server.GetMux().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/selection", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, server, _ := newTestServer(t, nil, Options{
		AuthUsername:   "admin",
		AuthPassword:   "secret",
		MetricsHandler: metrics.Handler(),
	})

	rec := httptest.NewRecorder()
	server.GetMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without credentials", rec.Code)
	}
}

func TestEventsRouteRequiresBus(t *testing.T) {
	_, withoutBus, _ := newTestServer(t, nil, Options{})
	if _, ok := withoutBus.GetAPI().OpenAPI().Paths["/api/events"]; ok {
		t.Error("/api/events registered without an event bus")
	}

	_, withBus, _ := newTestServer(t, nil, Options{EventBus: events.New()})
	if _, ok := withBus.GetAPI().OpenAPI().Paths["/api/events"]; !ok {
		t.Error("/api/events not registered with an event bus")
	}
}

func TestRequestLogLevel(t *testing.T) {
	tests := []struct {
		method string
		status int
		want   slog.Level
	}{
		{http.MethodOptions, http.StatusNoContent, slog.LevelDebug},
		{http.MethodGet, http.StatusOK, slog.LevelInfo},
		{http.MethodGet, http.StatusNotFound, slog.LevelWarn},
		{http.MethodGet, http.StatusServiceUnavailable, slog.LevelError},
	}

	for _, tt := range tests {
		if got := requestLogLevel(tt.method, tt.status); got != tt.want {
			t.Errorf("requestLogLevel(%s, %d) = %v, want %v", tt.method, tt.status, got, tt.want)
		}
	}
}
