package domain

import (
	"sort"
	"time"
)

// SizeReport is the result of measuring a directory tree.
type SizeReport struct {
	Bytes   int64 // Sum of regular file lengths
	Files   int   // Files counted in Bytes
	Skipped int   // Entries that could not be read and were left out
}

// DirectoryEntry is one immediate child directory of the target.
// It is enumerated fresh on every run and never persisted.
type DirectoryEntry struct {
	Name      string
	Path      string
	Parent    string
	CreatedAt time.Time

	size     SizeReport
	measured bool
}

// Measure returns the recursive size of the directory, calling measure on
// first use only. A failed measurement is not cached.
func (e *DirectoryEntry) Measure(measure func(*DirectoryEntry) (SizeReport, error)) (SizeReport, error) {
	if e.measured {
		return e.size, nil
	}
	report, err := measure(e)
	if err != nil {
		return SizeReport{}, err
	}
	e.size = report
	e.measured = true
	return report, nil
}

// SortByCreation orders entries oldest first. Entries created at the same
// instant are ordered by name, then by path, so the order never depends on
// how the platform enumerated them.
func SortByCreation(entries []*DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
}
