package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/reader"
)

// newLsCmd creates the `ls` command.
// Usage: ghtree ls <org/repo[@ref]> [path]
func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <org/repo[@ref]> [path]",
		Short: "List a directory of a repository",
		Long: `Lists the direct children of a directory, in the order GitHub returns them.
Each line shows the kind (d or f), the size in bytes and the name.

Example:
  ghtree ls acme/widgets@main src`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: a.completePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := a.setup()
			if err != nil {
				return err
			}
			return runLs(cmd.Context(), a.out, rd, args[0], optionalArg(args, 1))
		},
	}
}

func runLs(ctx context.Context, w io.Writer, rd *reader.Reader, rawRef, path string) error {
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
		printEntry(w, node)
		return nil
	}

	entries, err := dir.Entries(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		printEntry(w, entry)
	}
	return nil
}

func printEntry(w io.Writer, node reader.Node) {
	switch n := node.(type) {
	case *reader.Directory:
		fmt.Fprintf(w, "d %10s  %s/\n", "-", n.Name())
	case *reader.File:
		fmt.Fprintf(w, "f %10d  %s\n", n.Size(), n.Name())
	}
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
