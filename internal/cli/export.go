package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cbout22/ghtree/internal/export"
	"github.com/cbout22/ghtree/internal/reader"
)

// newExportCmd creates the `export` command.
// Usage: ghtree export <org/repo[@ref]> <path> <dest>
func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <org/repo[@ref]> <path> <dest>",
		Short: "Copy a directory of a repository to disk",
		Long: `Downloads every file below a repository directory into a local directory,
one request per directory and per file. Use "." as path for the whole repository.

Example:
  ghtree export acme/widgets@v1.2 docs ./docs`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := a.setup()
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), a.out, rd, a.writer, a.logger, args[0], args[1], args[2])
		},
	}
}

func runExport(ctx context.Context, w io.Writer, rd *reader.Reader, fw export.FileWriter, logger *zap.SugaredLogger,
	rawRef, path, dest string) error {
	root, err := openRef(rd, rawRef)
	if err != nil {
		return err
	}
	node, err := root.Lookup(ctx, path)
	if err != nil {
		return err
	}
	dir, ok := node.(*reader.Directory)
	if !ok {
		return &reader.NotDirectoryError{Path: node.Path()}
	}

	fmt.Fprintf(w, "🔄 Exporting %s:/%s to %s...\n", rd.Target().FullName(), dir.Path(), dest)

	result, err := export.New(fw, logger).Export(ctx, dir, dest)
	if err != nil {
		return fmt.Errorf("export failed after %d file(s): %w", result.Files, err)
	}

	fmt.Fprintf(w, "✅ %d file(s) in %d director(ies), %d bytes written to %s\n",
		result.Files, result.Dirs, result.Bytes, result.TargetDir)
	if result.Skipped > 0 {
		fmt.Fprintf(w, "   %d submodule(s) skipped\n", result.Skipped)
	}
	return nil
}
