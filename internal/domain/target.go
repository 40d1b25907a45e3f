package domain

import (
	"strconv"

	"github.com/vertextoedge/space-reclaimer/internal/domain/vo"
)

// ReclaimTarget is the immutable goal of one run: the directory whose
// immediate subdirectories may be deleted and the free space to reach.
type ReclaimTarget struct {
	path      string
	threshold vo.ByteSize
}

// NewReclaimTarget builds a target from a path and a threshold in GiB.
func NewReclaimTarget(path string, thresholdGiB int64) (ReclaimTarget, error) {
	if path == "" {
		return ReclaimTarget{}, NewConfigurationError("path", "", ErrPathRequired)
	}
	threshold, err := vo.ByteSizeFromGiB(thresholdGiB)
	if err != nil {
		return ReclaimTarget{}, NewConfigurationError("free space", strconv.FormatInt(thresholdGiB, 10), ErrInvalidThreshold)
	}
	return ReclaimTarget{path: path, threshold: threshold}, nil
}

// Path returns the target directory
func (t ReclaimTarget) Path() string {
	return t.path
}

// Threshold returns the free space goal
func (t ReclaimTarget) Threshold() vo.ByteSize {
	return t.threshold
}

// ThresholdBytes returns the free space goal in bytes
func (t ReclaimTarget) ThresholdBytes() int64 {
	return t.threshold.Bytes()
}
