package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/reader"
)

// newCatCmd creates the `cat` command.
// Usage: ghtree cat <org/repo[@ref]> <path>
func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <org/repo[@ref]> <path>",
		Short: "Print a file of a repository",
		Long: `Fetches a single file and writes its raw bytes to stdout.

Example:
  ghtree cat acme/widgets README.md`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.completePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := a.setup()
			if err != nil {
				return err
			}
			return runCat(cmd.Context(), a.out, rd, args[0], args[1])
		},
	}
}

func runCat(ctx context.Context, w io.Writer, rd *reader.Reader, rawRef, path string) error {
	root, err := openRef(rd, rawRef)
	if err != nil {
		return err
	}
	node, err := root.Lookup(ctx, path)
	if err != nil {
		return err
	}
	file, ok := node.(*reader.File)
	if !ok {
		return &reader.NotFileError{Path: node.Path()}
	}

	content, err := file.Content(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
