//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// Formats returns all supported capture pixel formats of the device.
func (d *Device) Formats() ([]FormatInfo, error) {
	var formats []FormatInfo

	for i := uint32(0); ; i++ {
		fmtdesc := v4l2Fmtdesc{
			index: i,
			typ:   v4l2BufTypeVideoCapture,
		}

		err := d.withFD(func(fd int) error {
			return ioctl(fd, vidiocEnumFmt, unsafe.Pointer(&fmtdesc))
		})
		if err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break // End of enumeration
			}
			return nil, fmt.Errorf("failed to enumerate format %d: %w", i, err)
		}

		formats = append(formats, FormatInfo{
			PixelFormat: fmtdesc.pixelformat,
			FormatName:  cstr(fmtdesc.description[:]),
			Emulated:    fmtdesc.flags&v4l2FmtFlagEmulated != 0,
		})
	}

	return formats, nil
}

// FrameSizeRange returns the smallest and largest frame dimensions the device
// supports for a pixel format. The boolean is false when the driver does not
// enumerate frame sizes.
func (d *Device) FrameSizeRange(pixelFormat uint32) (SizeRange, bool, error) {
	var sizes SizeRange
	found := false

	for i := uint32(0); ; i++ {
		frmsize := v4l2Frmsizeenum{
			index:       i,
			pixelFormat: pixelFormat,
		}

		err := d.withFD(func(fd int) error {
			return ioctl(fd, vidiocEnumFramesizes, unsafe.Pointer(&frmsize))
		})
		if err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break // End of enumeration
			}
			// ENOTTY means device doesn't support frame size enumeration
			if errors.Is(err, syscall.ENOTTY) {
				return SizeRange{}, false, nil
			}
			return SizeRange{}, false, fmt.Errorf("failed to enumerate frame size %d: %w", i, err)
		}

		switch frmsize.typ {
		case v4l2FrmsizeTypeDiscrete:
			sizes = extendSizeRange(sizes, found, SizeRange{
				MinWidth:  frmsize.discrete.width,
				MaxWidth:  frmsize.discrete.width,
				MinHeight: frmsize.discrete.height,
				MaxHeight: frmsize.discrete.height,
			})
			found = true
		case v4l2FrmsizeTypeContinuous, v4l2FrmsizeTypeStepwise:
			// Stepwise overlays discrete in memory and is the only entry.
			stepwise := (*v4l2FrmsizeStepwise)(unsafe.Pointer(&frmsize.discrete))
			return SizeRange{
				MinWidth:  stepwise.minWidth,
				MaxWidth:  stepwise.maxWidth,
				MinHeight: stepwise.minHeight,
				MaxHeight: stepwise.maxHeight,
			}, true, nil
		}
	}

	return sizes, found, nil
}

// extendSizeRange widens acc to cover next.
func extendSizeRange(acc SizeRange, initialized bool, next SizeRange) SizeRange {
	if !initialized {
		return next
	}
	acc.MinWidth = min(acc.MinWidth, next.MinWidth)
	acc.MaxWidth = max(acc.MaxWidth, next.MaxWidth)
	acc.MinHeight = min(acc.MinHeight, next.MinHeight)
	acc.MaxHeight = max(acc.MaxHeight, next.MaxHeight)
	return acc
}

// FormatFourCC converts a 4-byte pixel format to a human-readable string.
func FormatFourCC(format uint32) string {
	b := make([]byte, 4)
	b[0] = byte(format & 0xFF)
	b[1] = byte((format >> 8) & 0xFF)
	b[2] = byte((format >> 16) & 0xFF)
	b[3] = byte((format >> 24) & 0xFF)
	return string(b)
}
