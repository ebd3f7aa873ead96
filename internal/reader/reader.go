package reader

import (
	"context"
	"sync"

	"github.com/cbout22/ghtree/internal/config"
)

// Reader keeps a configurable target and produces repository trees from it.
// Setters never validate; validation happens when Read is called.
type Reader struct {
	connector Connector
	opts      []Option

	mu     sync.RWMutex
	target Target
}

// New creates a Reader that resolves connections through connector.
func New(connector Connector, opts ...Option) *Reader {
	return &Reader{connector: connector, opts: opts}
}

// Configure sets the organization, repository name and connection selector.
// An empty connection falls back to DefaultConnection.
func (r *Reader) Configure(org, name, connection string) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target.Organization = org
	r.target.Name = name
	r.target.Connection = connection
	return r
}

// SetOrganization sets the organization owning the repository.
func (r *Reader) SetOrganization(org string) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target.Organization = org
	return r
}

// SetName sets the repository name.
func (r *Reader) SetName(name string) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target.Name = name
	return r
}

// SetConnection sets the connection selector. Empty means DefaultConnection.
func (r *Reader) SetConnection(connection string) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target.Connection = connection
	return r
}

// SetRef pins reads to a branch, tag or commit. Empty means the default branch.
func (r *Reader) SetRef(ref string) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target.Ref = ref
	return r
}

// Target returns a copy of the current target.
func (r *Reader) Target() Target {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.target
}

// Connection returns the configured selector or DefaultConnection.
func (r *Reader) Connection() string {
	return r.Target().ConnectionName()
}

// Read applies the non-empty overrides to the reader's target, keeping them
// for later calls, and opens the repository root. The returned tree is bound
// to a snapshot of the target: later changes to the Reader do not affect it.
func (r *Reader) Read(org, name, connection string) (*Directory, error) {
	r.mu.Lock()
	r.target = r.target.WithOverrides(org, name, connection)
	target := r.target
	r.mu.Unlock()

	return Open(r.connector, target, r.opts...)
}

// ReadPath fetches path from the current target without building a tree.
func (r *Reader) ReadPath(ctx context.Context, path string) (Contents, error) {
	repo, err := r.repository()
	if err != nil {
		return Contents{}, err
	}
	return repo.ReadPath(ctx, path)
}

// ExtractArchive returns an archive reference for the current target.
func (r *Reader) ExtractArchive(ctx context.Context, format config.ArchiveFormat, branch string) (Archive, error) {
	repo, err := r.repository()
	if err != nil {
		return Archive{}, err
	}
	return repo.ExtractArchive(ctx, format, branch)
}

func (r *Reader) repository() (*Repository, error) {
	target := r.Target()
	client, err := r.connector.Connection(target.ConnectionName())
	if err != nil {
		return nil, err
	}
	return NewRepository(target, client, r.opts...), nil
}
