package devices

import (
	"fmt"
	"os"
	"strings"

	"github.com/smazurov/focusselect/internal/camera"
)

// v4l2 symlink directories; variables so tests can point them elsewhere.
var (
	byIDDir   = "/dev/v4l/by-id"
	byPathDir = "/dev/v4l/by-path"
)

// ResolveDevicePath returns the node to open for a device: its enumerated
// path, a /dev path used as the ID, or a stable by-id/by-path symlink.
func ResolveDevicePath(device camera.VideoDevice) (string, error) {
	if device.Path != "" {
		return device.Path, nil
	}

	if strings.HasPrefix(device.ID, "/dev/") {
		return device.ID, nil
	}

	if strings.HasPrefix(device.ID, "usb-") {
		devicePath := byIDDir + "/" + device.ID
		if _, err := os.Stat(devicePath); err == nil {
			return devicePath, nil
		}
	}

	if strings.HasPrefix(device.ID, "platform-") || strings.HasPrefix(device.ID, "usb-") {
		devicePath := byPathDir + "/" + device.ID
		if _, err := os.Stat(devicePath); err == nil {
			return devicePath, nil
		}
	}

	return "", fmt.Errorf("no device node found for device ID: %s", device.ID)
}
