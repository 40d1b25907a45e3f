package domain

import (
	"errors"
)

// Common domain errors
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Configuration errors
	ErrPathRequired     = errors.New("target path is required")
	ErrValueRequired    = errors.New("value is not specified")
	ErrPathNotFound     = errors.New("target directory does not exist")
	ErrNotADirectory    = errors.New("target path is not a directory")
	ErrInvalidThreshold = errors.New("free space threshold must be a non-negative whole number of GiB")

	// Volume errors
	ErrUnresolvableRoot = errors.New("cannot resolve volume root from path")
	ErrVolumeNotReady   = errors.New("volume is not ready")

	// Catalog errors
	ErrNotImmediateChild = errors.New("entry is not an immediate child of the target directory")
	ErrSymlinkEntry      = errors.New("entry is a symbolic link")
)

// ConfigurationError reports a missing or invalid configuration value.
// The run must not start when one is returned.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

// Error returns the error message
func (e *ConfigurationError) Error() string {
	msg := "invalid configuration"
	if e.Field != "" {
		msg += " for " + e.Field
	}
	if e.Value != "" {
		msg += " (" + e.Value + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Err: err}
}

// IsConfigurationError returns true if err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// VolumeError reports that the volume hosting the target cannot be used.
type VolumeError struct {
	Path string
	Root string
	Err  error
}

// Error returns the error message
func (e *VolumeError) Error() string {
	msg := "volume"
	if e.Root != "" {
		msg += " " + e.Root
	}
	if e.Path != "" {
		msg += " for " + e.Path
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": unavailable"
}

// Unwrap returns the underlying error
func (e *VolumeError) Unwrap() error {
	return e.Err
}

// NewVolumeError creates a new volume error
func NewVolumeError(path, root string, err error) *VolumeError {
	return &VolumeError{Path: path, Root: root, Err: err}
}

// IsVolumeError returns true if err is or wraps a VolumeError
func IsVolumeError(err error) bool {
	var ve *VolumeError
	return errors.As(err, &ve)
}

// IOFailure reports a filesystem failure while listing, measuring or
// deleting directories. It is always fatal to the run.
type IOFailure struct {
	Op   string
	Path string
	Err  error
}

// Error returns the error message
func (e *IOFailure) Error() string {
	msg := e.Op
	if msg == "" {
		msg = "io"
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": failed"
}

// Unwrap returns the underlying error
func (e *IOFailure) Unwrap() error {
	return e.Err
}

// NewIOFailure creates a new IO failure
func NewIOFailure(op, path string, err error) *IOFailure {
	return &IOFailure{Op: op, Path: path, Err: err}
}

// IsIOFailure returns true if err is or wraps an IOFailure
func IsIOFailure(err error) bool {
	var fe *IOFailure
	return errors.As(err, &fe)
}
