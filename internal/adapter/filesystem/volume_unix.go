//go:build !windows

package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"golang.org/x/sys/unix"
)

// Inspector reports volume state using statfs
type Inspector struct{}

// Ensure Inspector implements port.VolumeInspector
var _ port.VolumeInspector = (*Inspector)(nil)

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// ResolveRoot returns the mount point containing path, found by walking
// up the tree until the device id changes
func (i *Inspector) ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnresolvableRoot, err)
	}

	var st unix.Stat_t
	if err := unix.Stat(abs, &st); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnresolvableRoot, err)
	}
	dev := st.Dev

	current := abs
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return current, nil
		}
		var pst unix.Stat_t
		if err := unix.Stat(parent, &pst); err != nil || pst.Dev != dev {
			return current, nil
		}
		current = parent
	}
}

// Ready returns nil if the root can be queried with statfs
func (i *Inspector) Ready(root string) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVolumeNotReady, err)
	}
	if stat.Blocks == 0 {
		return fmt.Errorf("%w: %s reports zero capacity", domain.ErrVolumeNotReady, root)
	}
	return nil
}

// Usage returns total and available bytes for the root
func (i *Inspector) Usage(root string) (*domain.VolumeState, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		return nil, fmt.Errorf("failed to get disk stats: %w", err)
	}

	bsize := uint64(stat.Bsize)
	return &domain.VolumeState{
		Total: uint64(stat.Blocks) * bsize,
		Free:  uint64(stat.Bavail) * bsize,
	}, nil
}
