package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"go.uber.org/zap"
)

// Catalog handles directory listing, measurement and removal on the local filesystem
type Catalog struct {
	logger *zap.Logger
}

// Ensure Catalog implements port.DirectoryCatalog
var _ port.DirectoryCatalog = (*Catalog)(nil)

// NewCatalog creates a new Catalog
func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{logger: logger}
}

// List returns the immediate child directories of path.
// Symbolic links are never candidates, even when they point at a directory.
func (c *Catalog) List(path string) ([]*domain.DirectoryEntry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, domain.NewIOFailure("list", path, err)
	}

	entries := make([]*domain.DirectoryEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.Type()&fs.ModeSymlink != 0 {
			c.logger.Debug("skipping symlink", zap.String("name", de.Name()))
			continue
		}
		if !de.IsDir() {
			continue
		}

		childPath := filepath.Join(path, de.Name())
		info, err := de.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed between ReadDir and Info
				continue
			}
			return nil, domain.NewIOFailure("stat", childPath, err)
		}

		entries = append(entries, &domain.DirectoryEntry{
			Name:      de.Name(),
			Path:      childPath,
			Parent:    path,
			CreatedAt: creationTime(childPath, info),
		})
	}
	return entries, nil
}

// Size returns the total length of regular files under the entry.
// Files and subdirectories that cannot be read are skipped and counted;
// only a failure to read the entry itself is returned as an error.
func (c *Catalog) Size(entry *domain.DirectoryEntry) (domain.SizeReport, error) {
	var report domain.SizeReport
	err := filepath.WalkDir(entry.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == entry.Path {
				return err
			}
			report.Skipped++
			c.logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			report.Skipped++
			c.logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return nil
		}
		report.Bytes += info.Size()
		report.Files++
		return nil
	})
	if err != nil {
		return domain.SizeReport{}, domain.NewIOFailure("measure", entry.Path, err)
	}
	return report, nil
}

// Remove deletes the entry and everything below it.
// It refuses entries that are not immediate children of the listed directory.
func (c *Catalog) Remove(entry *domain.DirectoryEntry) error {
	if err := checkImmediateChild(entry); err != nil {
		return domain.NewIOFailure("delete", entry.Path, err)
	}

	info, err := os.Lstat(entry.Path)
	if err != nil {
		return domain.NewIOFailure("delete", entry.Path, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return domain.NewIOFailure("delete", entry.Path, domain.ErrSymlinkEntry)
	}
	if !info.IsDir() {
		return domain.NewIOFailure("delete", entry.Path, domain.ErrNotADirectory)
	}

	if err := os.RemoveAll(entry.Path); err != nil {
		return domain.NewIOFailure("delete", entry.Path, err)
	}
	return nil
}

// checkImmediateChild validates that entry.Path is exactly Parent/Name
func checkImmediateChild(entry *domain.DirectoryEntry) error {
	name := entry.Name
	switch {
	case entry.Parent == "", name == "", name == ".", name == "..":
		return domain.ErrNotImmediateChild
	case strings.ContainsRune(name, filepath.Separator), strings.ContainsRune(name, '/'):
		return domain.ErrNotImmediateChild
	case filepath.Join(entry.Parent, name) != filepath.Clean(entry.Path):
		return fmt.Errorf("%w: %s is not inside %s", domain.ErrNotImmediateChild, entry.Path, entry.Parent)
	}
	return nil
}
