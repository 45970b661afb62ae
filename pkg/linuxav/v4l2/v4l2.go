//go:build linux

// Package v4l2 provides pure Go bindings to the Video4Linux2 (V4L2) API
// for device enumeration and camera control queries.
//
// This package does not use cgo, enabling simple cross-compilation for
// different Linux architectures (amd64, arm64, arm).
//
// # Device Enumeration
//
// Use FindDevices to discover all V4L2 video capture devices:
//
//	devices, err := v4l2.FindDevices()
//	for _, dev := range devices {
//	    fmt.Printf("%s: %s\n", dev.DeviceID, dev.DeviceName)
//	}
//
// # Control Queries
//
// Open a device and query the camera-class controls it exposes:
//
//	dev, err := v4l2.Open("/dev/video0")
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	focus, err := dev.QueryControl(v4l2.CIDFocusAbsolute)
//	if errors.Is(err, v4l2.ErrControlNotSupported) {
//	    // fixed-focus camera
//	}
//	fmt.Printf("focus: %d..%d step %d\n", focus.Minimum, focus.Maximum, focus.Step)
//
// # Format Queries
//
// Query pixel formats and the frame size extents of a format:
//
//	formats, _ := dev.Formats()
//	sizes, _ := dev.FrameSizeRange(formats[0].PixelFormat)
package v4l2
