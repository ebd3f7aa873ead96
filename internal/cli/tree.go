package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/reader"
)

// newTreeCmd creates the `tree` command.
// Usage: ghtree tree <org/repo[@ref]> [path] [--depth N]
func newTreeCmd(a *app) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree <org/repo[@ref]> [path]",
		Short: "Print the directory tree of a repository",
		Long: `Walks a repository directory by directory and prints an indented tree.
Every directory costs one API request, so use --depth on large repositories.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: a.completePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := a.setup()
			if err != nil {
				return err
			}
			return runTree(cmd.Context(), a.out, rd, args[0], optionalArg(args, 1), depth)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum depth to expand (0 = unlimited)")

	return cmd
}

func runTree(ctx context.Context, w io.Writer, rd *reader.Reader, rawRef, path string, maxDepth int) error {
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

	title := dir.Path()
	if title == "" {
		title = rd.Target().FullName()
	}
	fmt.Fprintln(w, title)

	return dir.Walk(ctx, func(n reader.Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		if !n.IsDir() {
			fmt.Fprintf(w, "%s%s\n", indent, n.Name())
			return nil
		}
		fmt.Fprintf(w, "%s%s/\n", indent, n.Name())
		if maxDepth > 0 && depth >= maxDepth {
			return reader.SkipDir
		}
		return nil
	})
}
