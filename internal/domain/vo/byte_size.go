package vo

import (
	"errors"
	"math"

	"github.com/dustin/go-humanize"
)

// ByteSize represents an amount of disk space.
// It provides type-safe conversions between binary units.
type ByteSize struct {
	bytes int64
}

const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
)

var (
	ErrNegativeSize = errors.New("size cannot be negative")
	ErrSizeOverflow = errors.New("size overflows int64 bytes")
)

// NewByteSize creates a new ByteSize value object.
func NewByteSize(bytes int64) (ByteSize, error) {
	if bytes < 0 {
		return ByteSize{}, ErrNegativeSize
	}
	return ByteSize{bytes: bytes}, nil
}

// MustByteSize creates a new ByteSize, panicking if invalid.
func MustByteSize(bytes int64) ByteSize {
	bs, err := NewByteSize(bytes)
	if err != nil {
		panic(err)
	}
	return bs
}

// ByteSizeFromGiB converts a whole number of gibibytes (gib * 1024^3).
func ByteSizeFromGiB(gib int64) (ByteSize, error) {
	if gib < 0 {
		return ByteSize{}, ErrNegativeSize
	}
	if gib > math.MaxInt64/GiB {
		return ByteSize{}, ErrSizeOverflow
	}
	return ByteSize{bytes: gib * GiB}, nil
}

// ByteSizeFromUint64 converts an unsigned byte count, clamping at MaxInt64.
func ByteSizeFromUint64(bytes uint64) ByteSize {
	if bytes > math.MaxInt64 {
		return ByteSize{bytes: math.MaxInt64}
	}
	return ByteSize{bytes: int64(bytes)}
}

// Bytes returns the size in bytes.
func (bs ByteSize) Bytes() int64 {
	return bs.bytes
}

// KiB returns the size in whole kibibytes.
func (bs ByteSize) KiB() int64 {
	return bs.bytes / KiB
}

// MiB returns the size in whole mebibytes.
func (bs ByteSize) MiB() int64 {
	return bs.bytes / MiB
}

// GiB returns the size in whole gibibytes.
func (bs ByteSize) GiB() int64 {
	return bs.bytes / GiB
}

// AtLeast reports whether the size is greater than or equal to other.
func (bs ByteSize) AtLeast(other ByteSize) bool {
	return bs.bytes >= other.bytes
}

// String returns a human-readable representation, e.g. "1.5 GiB".
func (bs ByteSize) String() string {
	return humanize.IBytes(uint64(bs.bytes))
}
