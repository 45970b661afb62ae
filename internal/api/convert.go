package api

import (
	"github.com/smazurov/focusselect/internal/api/models"
	"github.com/smazurov/focusselect/internal/camera"
)

func toDeviceInfo(d camera.VideoDevice) models.DeviceInfo {
	return models.DeviceInfo{DeviceID: d.ID, Label: d.Label, Path: d.Path}
}

func toRange(r *camera.Range) *models.Range {
	if r == nil {
		return nil
	}
	return &models.Range{Min: r.Min, Max: r.Max, Step: r.Step}
}

func toFocusRange(f *camera.FocusDistance) *models.Range {
	if f == nil {
		return nil
	}
	return &models.Range{Min: f.Min, Max: f.Max, Step: f.Step}
}

func toCapabilitySets(sets []camera.CapabilitySet) []models.CapabilitySet {
	out := make([]models.CapabilitySet, 0, len(sets))
	for _, set := range sets {
		out = append(out, models.CapabilitySet{
			FocusDistance: toFocusRange(set.FocusDistance),
			FocusMode:     set.FocusMode,
			Zoom:          toRange(set.Zoom),
			Torch:         set.Torch,
			Width:         toRange(set.Width),
			Height:        toRange(set.Height),
		})
	}
	return out
}

func toCapabilityReport(report camera.Report) models.CapabilityReportData {
	data := models.CapabilityReportData{
		Devices:    make([]models.DeviceReport, 0, len(report.Devices)),
		SelectedID: report.SelectedID,
		Selected:   report.Selected,
	}

	for _, d := range report.Devices {
		entry := models.DeviceReport{
			DeviceInfo:    toDeviceInfo(d.Device),
			Capabilities:  toCapabilitySets(d.Capabilities),
			FocusDistance: toFocusRange(d.FocusDistance),
			AutoFocus:     d.AutoFocus,
		}
		if d.Err != nil {
			entry.Error = d.Err.Error()
		}
		data.Devices = append(data.Devices, entry)
	}

	if report.Selected {
		minFocus := report.Focus.Min
		data.MinFocusDistance = &minFocus
	}

	return data
}
