//go:build !linux && !darwin && !windows

package filesystem

import (
	"io/fs"
	"time"
)

// creationTime falls back to the modification time
func creationTime(path string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
