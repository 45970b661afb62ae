package cmd

import (
	"time"

	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/devices"
	"github.com/smazurov/focusselect/internal/events"
	"github.com/smazurov/focusselect/internal/logging"
)

// Runtime carries the collaborators built from configuration. main fills it
// in before any subcommand runs.
type Runtime struct {
	Selector *camera.Selector
	EventBus *events.Bus
	WatchDir string
	Debounce time.Duration
}

// NewWatcher creates a device node watcher over the configured directory.
func (r *Runtime) NewWatcher() *devices.Watcher {
	opts := []devices.WatcherOption{devices.WithDebounce(r.Debounce)}
	if r.EventBus != nil {
		opts = append(opts, devices.WithPublisher(r.EventBus))
	}
	return devices.NewWatcher(r.WatchDir, logging.GetLogger("watcher"), opts...)
}
