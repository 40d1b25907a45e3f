//go:build windows

package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"golang.org/x/sys/windows"
)

// Inspector reports volume state using GetDiskFreeSpaceEx
type Inspector struct{}

// Ensure Inspector implements port.VolumeInspector
var _ port.VolumeInspector = (*Inspector)(nil)

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// ResolveRoot returns the drive root (e.g. `D:\`) or UNC share containing path
func (i *Inspector) ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnresolvableRoot, err)
	}
	volume := filepath.VolumeName(abs)
	if volume == "" {
		return "", fmt.Errorf("%w: no drive in %s", domain.ErrUnresolvableRoot, path)
	}
	return volume + `\`, nil
}

// Ready returns nil if the drive exists and answers free-space queries
func (i *Inspector) Ready(root string) error {
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVolumeNotReady, err)
	}

	switch windows.GetDriveType(rootPtr) {
	case windows.DRIVE_UNKNOWN, windows.DRIVE_NO_ROOT_DIR:
		return fmt.Errorf("%w: %s is not a drive root", domain.ErrVolumeNotReady, root)
	}

	if _, err := i.Usage(root); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVolumeNotReady, err)
	}
	return nil
}

// Usage returns total and available bytes for the root
func (i *Inspector) Usage(root string) (*domain.VolumeState, error) {
	var freeBytesAvailable, totalNumberOfBytes, totalNumberOfFreeBytes uint64

	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return nil, fmt.Errorf("failed to convert path: %w", err)
	}

	if err := windows.GetDiskFreeSpaceEx(rootPtr, &freeBytesAvailable, &totalNumberOfBytes, &totalNumberOfFreeBytes); err != nil {
		return nil, fmt.Errorf("failed to get disk stats: %w", err)
	}

	return &domain.VolumeState{
		Total: totalNumberOfBytes,
		Free:  freeBytesAvailable,
	}, nil
}
