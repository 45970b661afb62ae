// Package camera picks the capture device best suited to close-range
// barcode reading.
//
// A Selector probes every video input device in turn: it opens a capture
// session scoped to the device, reads the capability set of each track,
// stops every track and moves on. The device reporting the smallest
// minimum focus distance wins; ties go to the device enumerated first.
//
//	sel := camera.NewSelector(detector, detector, camera.WithLogger(logger))
//	id, ok := sel.SelectBestFocusDevice(ctx)
//	if !ok {
//		// no device reports a focus distance, keep the default camera
//	}
//
// Probing is strictly sequential so that at most one camera is open at a
// time. Per-device failures are logged and skipped; selection never fails.
// Concurrent calls on the same hardware should be serialized by the caller.
package camera
