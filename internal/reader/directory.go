package reader

import (
	"context"
	"path"
	"slices"
	"strings"
	"sync/atomic"
)

// Directory is a lazily expanded directory of a repository. Its children are
// fetched on first access and kept for the lifetime of the node.
//
// Concurrent first loads are not coordinated: each caller may fetch, and the
// last successful load wins. Both see the same remote listing.
type Directory struct {
	repo *Repository
	path string
	name string

	// nil until the first successful load.
	state atomic.Pointer[listing]
}

type listing struct {
	children []Node
}

func newDirectory(repo *Repository, p string) *Directory {
	name := ""
	if p != "" {
		name = path.Base(p)
	}
	return newNamedDirectory(repo, p, name)
}

func newNamedDirectory(repo *Repository, p, name string) *Directory {
	return &Directory{repo: repo, path: p, name: name}
}

func (d *Directory) Name() string { return d.name }
func (d *Directory) Path() string { return d.path }
func (d *Directory) IsDir() bool  { return true }
func (d *Directory) node()        {}

// Repository returns the handle the directory reads through.
func (d *Directory) Repository() *Repository {
	return d.repo
}

// Loaded reports whether the children have been fetched.
func (d *Directory) Loaded() bool {
	return d.state.Load() != nil
}

// Entries returns the children in the order the remote listed them. The
// first successful call fetches them; later calls reuse the result. A failed
// fetch returns the client's error unchanged and leaves the directory
// unloaded, so the next call fetches again.
func (d *Directory) Entries(ctx context.Context) ([]Node, error) {
	if l := d.state.Load(); l != nil {
		return slices.Clone(l.children), nil
	}

	contents, err := d.repo.ReadPath(ctx, d.path)
	if err != nil {
		return nil, err
	}
	if contents.Kind != ContentsListing {
		return nil, &NotDirectoryError{Path: d.path}
	}

	l := &listing{children: classify(d.repo, contents.Entries)}
	d.state.Store(l)
	return slices.Clone(l.children), nil
}

// Find returns the direct child called name.
func (d *Directory) Find(ctx context.Context, name string) (Node, error) {
	children, err := d.Entries(ctx)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if child.Name() == name {
			return child, nil
		}
	}
	return nil, &EntryNotFoundError{Dir: d.path, Name: name}
}

// Lookup resolves a slash separated path relative to d, loading every
// directory along the way. "" and "." return d itself.
func (d *Directory) Lookup(ctx context.Context, rel string) (Node, error) {
	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" {
		return d, nil
	}

	var current Node = d
	for _, segment := range strings.Split(rel, "/") {
		dir, ok := current.(*Directory)
		if !ok {
			return nil, &NotDirectoryError{Path: current.Path()}
		}
		next, err := dir.Find(ctx, segment)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
