// Package metrics provides Prometheus metrics for device probes and selections.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smazurov/focusselect/internal/events"
)

var (
	probeSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "focusselect",
		Subsystem: "probe",
		Name:      "sessions_total",
		Help:      "Device probes by result",
	}, []string{"result"})

	probeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "focusselect",
		Subsystem: "probe",
		Name:      "failures_total",
		Help:      "Device probes that failed to open or read",
	})

	selections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "focusselect",
		Name:      "selections_total",
		Help:      "Selection runs by outcome",
	}, []string{"outcome"})

	selectedMinFocus = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "focusselect",
		Name:      "selected_min_focus_distance",
		Help:      "Minimum focus distance of the last selected device",
	})

	deviceChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "focusselect",
		Subsystem: "devices",
		Name:      "changes_total",
		Help:      "Video device nodes added or removed",
	}, []string{"action"})

	// Last selection, for API access.
	lastSelection   *Selection
	lastSelectionMu sync.RWMutex
)

// Result label values of probe_sessions_total.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Outcome label values of selections_total.
const (
	OutcomeSelected  = "selected"
	OutcomeNoFocus   = "no_focus"
	OutcomeNoDevices = "no_devices"
)

// Selection is the outcome of the last selection run.
type Selection struct {
	DeviceID         string
	Selected         bool
	MinFocusDistance float64
	DeviceCount      int
	Timestamp        string
}

// RecordProbe counts a device probe.
func RecordProbe(ok bool) {
	if ok {
		probeSessions.WithLabelValues(ResultOK).Inc()
		return
	}
	probeSessions.WithLabelValues(ResultFailed).Inc()
	probeFailures.Inc()
}

// RecordSelection counts a selection run and caches its outcome.
func RecordSelection(sel Selection) {
	switch {
	case sel.Selected:
		selections.WithLabelValues(OutcomeSelected).Inc()
		selectedMinFocus.Set(sel.MinFocusDistance)
	case sel.DeviceCount == 0:
		selections.WithLabelValues(OutcomeNoDevices).Inc()
	default:
		selections.WithLabelValues(OutcomeNoFocus).Inc()
	}

	lastSelectionMu.Lock()
	dup := sel
	lastSelection = &dup
	lastSelectionMu.Unlock()
}

// RecordDeviceChange counts a device node change.
func RecordDeviceChange(action string) {
	deviceChanges.WithLabelValues(action).Inc()
}

// LastSelection returns the outcome of the most recent selection run,
// or nil before the first run.
func LastSelection() *Selection {
	lastSelectionMu.RLock()
	defer lastSelectionMu.RUnlock()
	if lastSelection == nil {
		return nil
	}
	dup := *lastSelection
	return &dup
}

// Subscribe drives the metrics from bus events. Returns a function that
// removes the subscriptions.
func Subscribe(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(_ events.DeviceProbedEvent) {
			RecordProbe(true)
		}),
		bus.Subscribe(func(_ events.ProbeFailedEvent) {
			RecordProbe(false)
		}),
		bus.Subscribe(func(e events.SelectionCompletedEvent) {
			RecordSelection(Selection{
				DeviceID:         e.DeviceID,
				Selected:         e.Selected,
				MinFocusDistance: e.MinFocusDistance,
				DeviceCount:      e.DeviceCount,
				Timestamp:        e.Timestamp,
			})
		}),
		bus.Subscribe(func(e events.DeviceChangedEvent) {
			RecordDeviceChange(e.Action)
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
