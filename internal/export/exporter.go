package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cbout22/ghtree/internal/reader"
)

// Exporter copies remote directory trees to a local destination.
type Exporter struct {
	writer FileWriter
	logger *zap.SugaredLogger
}

// New creates an Exporter.
func New(writer FileWriter, logger *zap.SugaredLogger) *Exporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Exporter{
		writer: writer,
		logger: logger,
	}
}

// Result holds the outcome of one export.
type Result struct {
	TargetDir string
	Files     int
	Dirs      int
	Skipped   int
	Bytes     int64
}

// Export writes every file below dir into dest, keeping the layout relative
// to dir. Submodules have no content of their own and are skipped.
func (e *Exporter) Export(ctx context.Context, dir *reader.Directory, dest string) (Result, error) {
	result := Result{TargetDir: dest}

	if err := e.writer.MkdirAll(dest); err != nil {
		return result, fmt.Errorf("creating directory %s: %w", dest, err)
	}

	err := dir.Walk(ctx, func(node reader.Node, _ int) error {
		rel := filepath.FromSlash(relativePath(dir.Path(), node.Path()))
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("refusing to export %s outside %s", node.Path(), dest)
		}
		target := filepath.Join(dest, rel)

		switch n := node.(type) {
		case *reader.Directory:
			if err := e.writer.MkdirAll(target); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			result.Dirs++
		case *reader.File:
			if n.Type() == "submodule" {
				e.logger.Debugf("skipping submodule %s", n.Path())
				result.Skipped++
				return nil
			}
			content, err := n.Content(ctx)
			if err != nil {
				return fmt.Errorf("downloading %s: %w", n.Path(), err)
			}
			if err := e.writer.Write(target, content); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			e.logger.Debugf("exported %s (%d bytes)", n.Path(), len(content))
			result.Files++
			result.Bytes += int64(len(content))
		}
		return nil
	})

	return result, err
}

// relativePath strips the exported directory's path from a descendant's path.
func relativePath(base, p string) string {
	if base == "" {
		return p
	}
	if rel := strings.TrimPrefix(p, base+"/"); rel != p {
		return rel
	}
	// Malformed listing: the child does not extend its parent.
	return filepath.Base(p)
}
