package fixture

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Options controls what Generate creates
type Options struct {
	Folders  int       // Number of folders to create under root
	Files    int       // Number of files to write; capped at Folders
	FileSize int64     // Size of each file in bytes
	Progress io.Writer // Progress bar output; nil disables it
}

// Report describes what Generate created
type Report struct {
	Folders        []string
	Files          []string
	FolderDuration time.Duration
	FileDuration   time.Duration
}

// Generator fills a directory with uniquely named folders and files so
// a reclaim can be tried against a realistic tree
type Generator struct {
	logger  *zap.Logger
	rand    *rand.Rand
	newName func() string
}

// New creates a new Generator. rnd may be nil for a randomly seeded source.
func New(logger *zap.Logger, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		logger:  logger,
		rand:    rnd,
		newName: uuid.NewString,
	}
}

// Generate creates opts.Folders folders under root, then writes one file
// of opts.FileSize zero bytes into each of opts.Files distinct folders
// chosen among every subdirectory of root, including ones that existed
// before the call.
// Folders are created one after another, so their creation times increase
// in creation order.
func (g *Generator) Generate(ctx context.Context, root string, opts Options) (*Report, error) {
	if root == "" {
		return nil, fmt.Errorf("fixture root is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create fixture root: %w", err)
	}

	report := &Report{}

	start := time.Now()
	folders, err := g.createFolders(ctx, root, opts)
	report.Folders = folders
	report.FolderDuration = time.Since(start)
	if err != nil {
		return report, err
	}
	g.logger.Info("fixture folders created",
		zap.Int("count", len(folders)),
		zap.Duration("duration", report.FolderDuration))

	candidates, err := subdirectories(root)
	if err != nil {
		return report, err
	}

	start = time.Now()
	files, err := g.writeFiles(ctx, candidates, opts)
	report.Files = files
	report.FileDuration = time.Since(start)
	if err != nil {
		return report, err
	}
	g.logger.Info("fixture files written",
		zap.Int("count", len(files)),
		zap.Int64("file_size", opts.FileSize),
		zap.Duration("duration", report.FileDuration))

	return report, nil
}

func (g *Generator) createFolders(ctx context.Context, root string, opts Options) ([]string, error) {
	if opts.Folders <= 0 {
		return nil, nil
	}
	bar := newBar(opts.Progress, opts.Folders, "creating folders")
	defer bar.Finish()

	folders := make([]string, 0, opts.Folders)
	for i := 0; i < opts.Folders; i++ {
		if err := ctx.Err(); err != nil {
			return folders, err
		}
		path := filepath.Join(root, g.newName())
		if err := os.Mkdir(path, 0755); err != nil {
			return folders, fmt.Errorf("failed to create folder: %w", err)
		}
		folders = append(folders, path)
		_ = bar.Add(1)
	}
	return folders, nil
}

func (g *Generator) writeFiles(ctx context.Context, folders []string, opts Options) ([]string, error) {
	picks := g.pick(len(folders), opts.Files)
	if len(picks) == 0 {
		return nil, nil
	}
	bar := newBar(opts.Progress, len(picks), "writing files")
	defer bar.Finish()

	content := make([]byte, opts.FileSize)
	files := make([]string, 0, len(picks))
	for _, idx := range picks {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := filepath.Join(folders[idx], g.newName())
		if err := os.WriteFile(path, content, 0644); err != nil {
			return files, fmt.Errorf("failed to write file: %w", err)
		}
		files = append(files, path)
		_ = bar.Add(1)
	}
	return files, nil
}

// subdirectories lists the immediate child directories of root by name
func subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixture root: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

// pick returns count distinct indexes in [0, n). When count covers every
// index they are returned in order.
func (g *Generator) pick(n, count int) []int {
	if count > n {
		count = n
	}
	if count <= 0 {
		return nil
	}
	if count == n {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return g.rand.Perm(n)[:count]
}

func newBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
