package domain

import "github.com/vertextoedge/space-reclaimer/internal/domain/vo"

// VolumeState is a point-in-time snapshot of the volume hosting the target.
type VolumeState struct {
	Total uint64 // Total volume capacity in bytes
	Free  uint64 // Free bytes available to this process
}

// Satisfies reports whether free space is at or above the threshold.
func (v VolumeState) Satisfies(thresholdBytes int64) bool {
	if thresholdBytes <= 0 {
		return true
	}
	return vo.ByteSizeFromUint64(v.Free).AtLeast(vo.MustByteSize(thresholdBytes))
}
