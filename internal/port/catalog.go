package port

import "github.com/vertextoedge/space-reclaimer/internal/domain"

// DirectoryCatalog lists, measures and removes the immediate
// subdirectories of a target directory
type DirectoryCatalog interface {
	// List returns the immediate child directories of path, unordered
	List(path string) ([]*domain.DirectoryEntry, error)

	// Size walks the entry recursively and sums file lengths
	Size(entry *domain.DirectoryEntry) (domain.SizeReport, error)

	// Remove deletes the entry and all of its contents
	Remove(entry *domain.DirectoryEntry) error
}
