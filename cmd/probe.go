package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/smazurov/focusselect/internal/camera"
	"github.com/smazurov/focusselect/internal/devices"
)

// probeReport is written in the mock backend's [[device]] format, so a probe
// taken on real hardware can be replayed with --devices-backend mock.
type probeReport struct {
	GeneratedAt      time.Time     `toml:"generated_at"`
	Selected         string        `toml:"selected,omitempty"`
	MinFocusDistance *float64      `toml:"min_focus_distance,omitempty"`
	Devices          []probeDevice `toml:"device"`
}

type probeDevice struct {
	ID         string             `toml:"id"`
	Label      string             `toml:"label,omitempty"`
	Path       string             `toml:"path,omitempty"`
	Focus      *devices.MockRange `toml:"focus,inline,omitempty"`
	FocusModes []string           `toml:"focus_modes,omitempty"`
	Zoom       *devices.MockRange `toml:"zoom,inline,omitempty"`
	Torch      bool               `toml:"torch,omitempty"`
	AutoFocus  bool               `toml:"auto_focus,omitempty"`
	Fail       string             `toml:"fail,omitempty"`
	Error      string             `toml:"error,omitempty"`
}

// CreateProbeCmd creates the probe command.
func CreateProbeCmd(rt *Runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe every camera and write a capability report",
		Long: `Opens each video input device once, records its capabilities and the resulting ` +
			`selection as TOML. The report doubles as a device file for the mock backend.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := buildProbeReport(rt.Selector.Report(cmd.Context()), time.Now())

			if output == "" || output == "-" {
				return writeProbeReport(cmd.OutOrStdout(), report)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			if err := writeProbeReport(f, report); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote report for %d device(s) to %s\n", len(report.Devices), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the report (default stdout)")

	return cmd
}

func writeProbeReport(w io.Writer, report probeReport) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func buildProbeReport(report camera.Report, now time.Time) probeReport {
	out := probeReport{
		GeneratedAt: now.UTC().Truncate(time.Second),
		Devices:     make([]probeDevice, 0, len(report.Devices)),
	}
	if report.Selected {
		out.Selected = report.SelectedID
		minFocus := report.Focus.Min
		out.MinFocusDistance = &minFocus
	}

	for _, result := range report.Devices {
		out.Devices = append(out.Devices, toProbeDevice(result))
	}
	return out
}

func toProbeDevice(result camera.DeviceReport) probeDevice {
	dev := probeDevice{
		ID:        result.Device.ID,
		Label:     result.Device.Label,
		Path:      result.Device.Path,
		AutoFocus: result.AutoFocus,
	}

	if result.Err != nil {
		dev.Error = result.Err.Error()
		dev.Fail = "open"
		var probeErr *camera.ProbeError
		if errors.As(result.Err, &probeErr) && probeErr.Op != "" {
			dev.Fail = probeErr.Op
		}
		return dev
	}

	set, ok := primarySet(result.Capabilities)
	if !ok {
		return dev
	}
	if f := set.FocusDistance; f != nil {
		dev.Focus = &devices.MockRange{Min: f.Min, Max: f.Max, Step: f.Step}
	}
	if z := set.Zoom; z != nil {
		dev.Zoom = &devices.MockRange{Min: z.Min, Max: z.Max, Step: z.Step}
	}
	dev.FocusModes = set.FocusMode
	dev.Torch = set.Torch != nil && *set.Torch
	return dev
}

// primarySet picks the first set with a focus distance, else the first set.
func primarySet(sets []camera.CapabilitySet) (camera.CapabilitySet, bool) {
	for _, set := range sets {
		if set.FocusDistance != nil {
			return set, true
		}
	}
	if len(sets) > 0 {
		return sets[0], true
	}
	return camera.CapabilitySet{}, false
}
