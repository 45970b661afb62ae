package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/smazurov/focusselect/cmd"
	"github.com/smazurov/focusselect/internal/api"
	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/config"
	"github.com/smazurov/focusselect/internal/devices"
	"github.com/smazurov/focusselect/internal/events"
	"github.com/smazurov/focusselect/internal/logging"
	"github.com/smazurov/focusselect/internal/metrics"
	"github.com/smazurov/focusselect/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Device settings
	DevicesBackend    string `help:"Device backend (v4l2, mock)" default:"v4l2" toml:"devices.backend" env:"DEVICES_BACKEND"`
	DevicesMockFile   string `help:"Simulated device list for the mock backend" default:"devices.toml" toml:"devices.mock_file" env:"DEVICES_MOCK_FILE"`
	DevicesWatch      bool   `help:"Re-run the selection when video devices change" default:"true" toml:"devices.watch" env:"DEVICES_WATCH"`
	DevicesWatchDir   string `help:"Directory holding video device nodes" default:"/dev" toml:"devices.watch_dir" env:"DEVICES_WATCH_DIR"`
	DevicesDebounceMs int    `help:"Quiet period before re-probing after a device change" default:"500" toml:"devices.debounce_ms" env:"DEVICES_DEBOUNCE_MS"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings; an empty username disables auth
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCamera  string `help:"Selector logging level" default:"info" toml:"logging.camera" env:"LOGGING_CAMERA"`
	LoggingDevices string `help:"Devices logging level" default:"info" toml:"logging.devices" env:"LOGGING_DEVICES"`
	LoggingWatcher string `help:"Device watcher logging level" default:"info" toml:"logging.watcher" env:"LOGGING_WATCHER"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

func main() {
	rt := &cmd.Runtime{}

	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"camera":  opts.LoggingCamera,
				"devices": opts.LoggingDevices,
				"watcher": opts.LoggingWatcher,
				"api":     opts.LoggingAPI,
				"http":    opts.LoggingHTTP,
			},
		})

		logger := logging.GetLogger("main")

		detector, err := devices.New(devices.Options{
			Backend:  opts.DevicesBackend,
			MockFile: opts.DevicesMockFile,
		})
		if err != nil {
			logger.Error("Failed to create device backend", "backend", opts.DevicesBackend, "error", err)
			os.Exit(1)
		}

		// Create event bus for in-process event handling
		eventBus := events.New()
		unsubscribeMetrics := metrics.Subscribe(eventBus)

		selector := camera.NewSelector(detector, detector,
			camera.WithLogger(logging.GetLogger("camera")),
			camera.WithPublisher(eventBus))

		rt.Selector = selector
		rt.EventBus = eventBus
		rt.WatchDir = opts.DevicesWatchDir
		rt.Debounce = time.Duration(opts.DevicesDebounceMs) * time.Millisecond

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Selector:     selector,
			EventBus:     eventBus,
		}
		if opts.MetricsEnabled {
			apiOpts.MetricsHandler = metrics.Handler()
		}

		server := api.NewServer(apiOpts)

		var watcher *devices.Watcher

		hooks.OnStart(func() {
			logger.Info("Starting focusselect", "version", version.Version, "backend", opts.DevicesBackend)

			// Prime the last selection so /api/selection/last has data
			if id, ok := server.RunSelection(context.Background()); ok {
				logger.Info("Initial selection", "device_id", id)
			}

			if opts.DevicesWatch {
				watcher = rt.NewWatcher()
				watcher.OnChange(func() {
					server.RunSelection(context.Background())
				})
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Device watching disabled", "dir", opts.DevicesWatchDir, "error", startErr)
					watcher = nil
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Error("Error stopping device watcher", "error", stopErr)
				}
			}
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			unsubscribeMetrics()
		})
	})

	cli.Root().Use = "focusselect"
	cli.Root().Version = version.String()

	cli.Root().AddCommand(cmd.CreateSelectCmd(rt))
	cli.Root().AddCommand(cmd.CreateProbeCmd(rt))
	cli.Root().AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintln(c.OutOrStdout(), version.String())
		},
	})

	// Run the CLI
	cli.Run()
}
