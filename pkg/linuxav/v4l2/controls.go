//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// QueryControl returns the description of a single control.
// Controls the driver does not implement, or reports as disabled, yield
// ErrControlNotSupported.
func (d *Device) QueryControl(id uint32) (Control, error) {
	query := v4l2Queryctrl{id: id}

	err := d.withFD(func(fd int) error {
		return ioctl(fd, vidiocQueryctrl, unsafe.Pointer(&query))
	})
	if err != nil {
		if errors.Is(err, syscall.EINVAL) {
			return Control{}, ErrControlNotSupported
		}
		return Control{}, fmt.Errorf("failed to query control 0x%08x: %w", id, err)
	}

	ctrl := controlFromQuery(&query)
	if ctrl.ID != id || ctrl.Flags&v4l2CtrlFlagDisabled != 0 {
		return Control{}, ErrControlNotSupported
	}
	return ctrl, nil
}

// QueryMenu returns the names of a menu control's items indexed by value.
// Indices the driver skips are left empty.
func (d *Device) QueryMenu(ctrl Control) ([]string, error) {
	if ctrl.Type != ControlTypeMenu {
		return nil, fmt.Errorf("control 0x%08x is not a menu", ctrl.ID)
	}
	if ctrl.Minimum < 0 || ctrl.Maximum < ctrl.Minimum {
		return nil, fmt.Errorf("control 0x%08x has invalid menu range %d..%d", ctrl.ID, ctrl.Minimum, ctrl.Maximum)
	}

	items := make([]string, ctrl.Maximum+1)
	for i := ctrl.Minimum; i <= ctrl.Maximum; i++ {
		menu := v4l2Querymenu{id: ctrl.ID, index: uint32(i)}

		err := d.withFD(func(fd int) error {
			return ioctl(fd, vidiocQuerymenu, unsafe.Pointer(&menu))
		})
		if err != nil {
			if errors.Is(err, syscall.EINVAL) {
				continue // index not implemented
			}
			return nil, fmt.Errorf("failed to query menu item %d of control 0x%08x: %w", i, ctrl.ID, err)
		}
		items[i] = cstr(menu.name[:])
	}

	return items, nil
}

func controlFromQuery(q *v4l2Queryctrl) Control {
	return Control{
		ID:      q.id,
		Type:    ControlType(q.typ),
		Name:    cstr(q.name[:]),
		Minimum: q.minimum,
		Maximum: q.maximum,
		Step:    q.step,
		Default: q.defaultValue,
		Flags:   q.flags,
	}
}
