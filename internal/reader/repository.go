package reader

import (
	"context"

	"go.uber.org/zap"

	"github.com/cbout22/ghtree/internal/config"
)

// Option customizes readers and repositories.
type Option func(*options)

type options struct {
	logger *zap.SugaredLogger
}

// WithLogger sets the logger used for fetch tracing.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Repository is an immutable handle on one target bound to its client.
// Every node of a tree shares the Repository it was read from.
type Repository struct {
	target Target
	client ContentClient
	logger *zap.SugaredLogger
}

// NewRepository binds target to client without validating it.
func NewRepository(target Target, client ContentClient, opts ...Option) *Repository {
	o := newOptions(opts)
	return &Repository{target: target, client: client, logger: o.logger}
}

// Open validates target, resolves its connection and returns the unloaded
// root directory of the repository. No remote call is made.
func Open(connector Connector, target Target, opts ...Option) (*Directory, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	client, err := connector.Connection(target.ConnectionName())
	if err != nil {
		return nil, err
	}
	return NewRepository(target, client, opts...).Root(), nil
}

// Target returns the target the repository was bound to.
func (r *Repository) Target() Target {
	return r.target
}

// Root returns a new unloaded root directory.
func (r *Repository) Root() *Directory {
	return newDirectory(r, "")
}

// ReadPath returns whatever the remote stores at path. Client errors are
// returned unchanged.
func (r *Repository) ReadPath(ctx context.Context, path string) (Contents, error) {
	r.logger.Debugf("reading %s:/%s", r.target.FullName(), path)
	return r.client.Contents(ctx, r.target.Organization, r.target.Name, path, r.target.Ref)
}

// ExtractArchive returns a reference to a snapshot of the repository. An
// empty format means zipball and an empty branch the default branch.
func (r *Repository) ExtractArchive(ctx context.Context, format config.ArchiveFormat, branch string) (Archive, error) {
	if format == "" {
		format = config.Zipball
	}
	r.logger.Debugf("requesting %s archive of %s", format, r.target.FullName())
	return r.client.Archive(ctx, r.target.Organization, r.target.Name, format, branch)
}
