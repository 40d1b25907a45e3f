//go:build windows

package filesystem

import (
	"io/fs"
	"syscall"
	"time"
)

// creationTime returns the NTFS creation time
func creationTime(path string, info fs.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
