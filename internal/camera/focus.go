package camera

import "math"

// ExtractFocusDistance returns the first focus distance reported among sets,
// or nil when none reports one.
func ExtractFocusDistance(sets []CapabilitySet) *FocusDistance {
	for _, set := range sets {
		if set.FocusDistance != nil {
			return set.FocusDistance
		}
	}
	return nil
}

// HasAutoFocusMode reports whether any set offers the "auto" focus mode.
// It is informational and does not influence selection.
func HasAutoFocusMode(sets []CapabilitySet) bool {
	for _, set := range sets {
		if set.HasFocusMode(FocusModeAuto) {
			return true
		}
	}
	return false
}

// MatchDevice finds the device with the given ID in a consumer's device list.
func MatchDevice(devices []VideoDevice, id string) (VideoDevice, bool) {
	for _, device := range devices {
		if device.ID == id {
			return device, true
		}
	}
	return VideoDevice{}, false
}

// selectBest returns the device with the smallest minimum focus distance.
// Comparison is strict, so on equal minimums the earlier device wins.
func selectBest(index *CapabilityIndex) (string, FocusDistance, bool) {
	minFocusDistance := math.MaxFloat64
	var bestID string
	var best FocusDistance
	found := false

	for _, id := range index.ids {
		focus := ExtractFocusDistance(index.entries[id])
		if focus != nil && focus.Min < minFocusDistance {
			minFocusDistance = focus.Min
			bestID = id
			best = *focus
			found = true
		}
	}

	return bestID, best, found
}
