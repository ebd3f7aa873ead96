package reader

import (
	"context"

	"github.com/cbout22/ghtree/internal/config"
)

// DefaultConnection is the connection selector used when none is configured.
const DefaultConnection = config.DefaultConnection

// ContentsKind tells which half of a Contents result is populated.
type ContentsKind int

const (
	ContentsListing ContentsKind = iota // path addressed a directory
	ContentsFile                        // path addressed a single file
)

func (k ContentsKind) String() string {
	switch k {
	case ContentsListing:
		return "listing"
	case ContentsFile:
		return "file"
	}
	return "unknown"
}

// EntryDescriptor describes one child of a remote directory.
type EntryDescriptor struct {
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// IsDir reports whether the descriptor names a directory.
func (d EntryDescriptor) IsDir() bool {
	return d.Type == "dir"
}

// Contents is the result of reading one path of a repository. The remote
// endpoint answers with a listing for directories and a body for files.
type Contents struct {
	Kind    ContentsKind
	Entries []EntryDescriptor // set when Kind == ContentsListing
	Body    []byte            // set when Kind == ContentsFile
}

// Listing builds a directory result.
func Listing(entries ...EntryDescriptor) Contents {
	if entries == nil {
		entries = []EntryDescriptor{}
	}
	return Contents{Kind: ContentsListing, Entries: entries}
}

// FileBody builds a file result.
func FileBody(body []byte) Contents {
	return Contents{Kind: ContentsFile, Body: body}
}

// Archive references a downloadable snapshot of a repository. It is produced
// by the ContentClient and never inspected here.
type Archive struct {
	Format config.ArchiveFormat
	Ref    string // empty for the default branch
	URL    string
}

// ContentClient is the remote API this package reads through.
type ContentClient interface {
	// Contents returns the listing or the body stored at path. An empty path
	// addresses the repository root and an empty ref the default branch.
	Contents(ctx context.Context, org, repo, path, ref string) (Contents, error)

	// Archive returns a reference to a full snapshot of the repository.
	Archive(ctx context.Context, org, repo string, format config.ArchiveFormat, ref string) (Archive, error)
}

// Connector resolves an opaque connection selector to an authenticated client.
type Connector interface {
	Connection(name string) (ContentClient, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(name string) (ContentClient, error)

// Connection calls f(name).
func (f ConnectorFunc) Connection(name string) (ContentClient, error) {
	return f(name)
}

// Static returns a Connector that hands out the same client for every selector.
func Static(client ContentClient) Connector {
	return ConnectorFunc(func(string) (ContentClient, error) {
		return client, nil
	})
}
