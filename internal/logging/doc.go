// Package logging provides structured logging with per-module log levels.
//
// Output goes to stdout (text or JSON) when a terminal, pipe or file is
// attached, and to the systemd journal when journald is running. Both are
// used when both are available.
//
// Initialize once at startup, then ask for a module logger:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{"camera": "debug"},
//	})
//
//	logger := logging.GetLogger("camera")
//	logger.Info("Selected closest-focus camera", "device_id", id)
//
// Loggers obtained before Initialize are cached and follow the configured
// levels afterwards. Modules used by focusselect: camera, devices, watcher,
// api, http.
//
// Journal entries carry SYSLOG_IDENTIFIER=focusselect and one field per
// attribute:
//
//	journalctl -t focusselect MODULE=camera
//	journalctl -t focusselect -p warning
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	camera = "debug"
//	http = "warn"
package logging
