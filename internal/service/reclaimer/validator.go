package reclaimer

import (
	"errors"
	"fmt"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"go.uber.org/zap"
)

// Preflight is the outcome of validating a target before any deletion
type Preflight struct {
	Root      string
	Volume    domain.VolumeState
	Satisfied bool // Free space already meets the threshold
}

// Validator checks that the target's volume is usable and whether any
// work is needed at all
type Validator struct {
	volumes port.VolumeInspector
	logger  *zap.Logger
}

// NewValidator creates a new Validator
func NewValidator(volumes port.VolumeInspector, logger *zap.Logger) *Validator {
	return &Validator{volumes: volumes, logger: logger}
}

// Check resolves the volume root, verifies it is ready and compares its
// free space with the threshold. Errors are *domain.VolumeError.
func (v *Validator) Check(target domain.ReclaimTarget) (*Preflight, error) {
	root, err := v.volumes.ResolveRoot(target.Path())
	if err != nil {
		if !errors.Is(err, domain.ErrUnresolvableRoot) {
			err = fmt.Errorf("%w: %w", domain.ErrUnresolvableRoot, err)
		}
		return nil, domain.NewVolumeError(target.Path(), "", err)
	}
	if root == "" {
		return nil, domain.NewVolumeError(target.Path(), "", domain.ErrUnresolvableRoot)
	}

	if err := v.volumes.Ready(root); err != nil {
		if !errors.Is(err, domain.ErrVolumeNotReady) {
			err = fmt.Errorf("%w: %w", domain.ErrVolumeNotReady, err)
		}
		return nil, domain.NewVolumeError(target.Path(), root, err)
	}

	usage, err := v.volumes.Usage(root)
	if err != nil {
		return nil, domain.NewVolumeError(target.Path(), root, fmt.Errorf("%w: %w", domain.ErrVolumeNotReady, err))
	}

	pre := &Preflight{
		Root:      root,
		Volume:    *usage,
		Satisfied: usage.Satisfies(target.ThresholdBytes()),
	}

	v.logger.Debug("preflight checked",
		zap.String("target", target.Path()),
		zap.String("root", root),
		zap.Uint64("total_bytes", usage.Total),
		zap.Uint64("free_bytes", usage.Free),
		zap.Int64("threshold_bytes", target.ThresholdBytes()),
		zap.Bool("satisfied", pre.Satisfied))

	return pre, nil
}
