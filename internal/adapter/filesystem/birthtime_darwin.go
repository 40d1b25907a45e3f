//go:build darwin

package filesystem

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime returns the birth time from lstat
func creationTime(path string, info fs.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err == nil {
		sec, nsec := st.Btim.Unix()
		if sec > 0 {
			return time.Unix(sec, nsec)
		}
	}
	return info.ModTime()
}
