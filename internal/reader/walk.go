package reader

import (
	"context"
	"errors"
)

// SkipDir can be returned by a WalkFunc to leave a directory unexpanded.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for every node visited by Walk. depth is 1 for the
// direct children of the starting directory.
type WalkFunc func(node Node, depth int) error

// Walk visits the subtree below d depth first, in listing order, expanding
// directories one at a time. It stops at the first error other than SkipDir.
func (d *Directory) Walk(ctx context.Context, fn WalkFunc) error {
	return d.walk(ctx, fn, 1)
}

func (d *Directory) walk(ctx context.Context, fn WalkFunc, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	children, err := d.Entries(ctx)
	if err != nil {
		return err
	}
	for _, child := range children {
		err := fn(child, depth)
		if errors.Is(err, SkipDir) {
			continue
		}
		if err != nil {
			return err
		}
		if dir, ok := child.(*Directory); ok {
			if err := dir.walk(ctx, fn, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
