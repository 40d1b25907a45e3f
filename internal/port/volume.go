package port

import "github.com/vertextoedge/space-reclaimer/internal/domain"

// VolumeInspector reports on the volume hosting a path
type VolumeInspector interface {
	// ResolveRoot returns the root (mount point or drive) containing path.
	// Errors wrap domain.ErrUnresolvableRoot.
	ResolveRoot(path string) (string, error)

	// Ready returns nil if the root is mounted and accessible.
	// Errors wrap domain.ErrVolumeNotReady.
	Ready(root string) error

	// Usage returns a fresh snapshot of the root's capacity and free space
	Usage(root string) (*domain.VolumeState, error)
}
