package reclaimer

import (
	"errors"
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

const gib = int64(1024 * 1024 * 1024)

// mockInspector implements port.VolumeInspector with scripted free space.
// When catalog is set, every successful removal adds the removed size to
// the free space, unless freeAfter scripts explicit values.
type mockInspector struct {
	root       string
	resolveErr error
	readyErr   error
	usageErr   error
	failUsage  int // Fail the nth Usage call (1-based); zero never fails
	total      uint64
	free       uint64
	freeAfter  []uint64 // Free space after each deletion, in order

	usageCalls int
	readyCalls int
}

func (m *mockInspector) ResolveRoot(path string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return m.root, nil
}

func (m *mockInspector) Ready(root string) error {
	m.readyCalls++
	return m.readyErr
}

func (m *mockInspector) Usage(root string) (*domain.VolumeState, error) {
	m.usageCalls++
	if m.usageErr != nil && (m.failUsage == 0 || m.failUsage == m.usageCalls) {
		return nil, m.usageErr
	}
	return &domain.VolumeState{Total: m.total, Free: m.free}, nil
}

// mockCatalog implements port.DirectoryCatalog over an in-memory list
type mockCatalog struct {
	volume    *mockInspector
	entries   []*domain.DirectoryEntry
	sizes     map[string]int64
	listErr   error
	sizeErr   map[string]error
	removeErr map[string]error
	onRemove  func(name string)

	listCalls int
	measured  []string
	removed   []string
}

func (m *mockCatalog) List(path string) ([]*domain.DirectoryEntry, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*domain.DirectoryEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *mockCatalog) Size(entry *domain.DirectoryEntry) (domain.SizeReport, error) {
	m.measured = append(m.measured, entry.Name)
	if err := m.sizeErr[entry.Name]; err != nil {
		return domain.SizeReport{}, err
	}
	return domain.SizeReport{Bytes: m.sizes[entry.Name], Files: 1}, nil
}

func (m *mockCatalog) Remove(entry *domain.DirectoryEntry) error {
	if err := m.removeErr[entry.Name]; err != nil {
		return err
	}
	m.removed = append(m.removed, entry.Name)
	for i, e := range m.entries {
		if e.Name == entry.Name {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			break
		}
	}
	if m.volume != nil {
		if n := len(m.removed); n <= len(m.volume.freeAfter) {
			m.volume.free = m.volume.freeAfter[n-1]
		} else {
			m.volume.free += uint64(m.sizes[entry.Name])
		}
	}
	if m.onRemove != nil {
		m.onRemove(entry.Name)
	}
	return nil
}

// entry builds a child of /data created at base plus offset minutes
func entry(name string, offset int) *domain.DirectoryEntry {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.DirectoryEntry{
		Name:      name,
		Path:      "/data/" + name,
		Parent:    "/data",
		CreatedAt: base.Add(time.Duration(offset) * time.Minute),
	}
}

func mustTarget(path string, gibs int64) domain.ReclaimTarget {
	target, err := domain.NewReclaimTarget(path, gibs)
	if err != nil {
		panic(err)
	}
	return target
}

var errBoom = errors.New("boom")
