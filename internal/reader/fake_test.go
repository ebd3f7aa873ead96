package reader

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbout22/ghtree/internal/config"
)

type contentsCall struct {
	Org, Repo, Path, Ref string
}

type archiveCall struct {
	Org, Repo string
	Format    config.ArchiveFormat
	Ref       string
}

// fakeClient implements ContentClient from canned responses keyed by path.
type fakeClient struct {
	mu       sync.Mutex
	contents map[string]Contents
	failures map[string][]error // consumed one per call before contents
	archive  Archive

	contentsCalls []contentsCall
	archiveCalls  []archiveCall
}

var _ ContentClient = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		contents: make(map[string]Contents),
		failures: make(map[string][]error),
	}
}

func (f *fakeClient) Contents(_ context.Context, org, repo, path, ref string) (Contents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contentsCalls = append(f.contentsCalls, contentsCall{org, repo, path, ref})

	if queued := f.failures[path]; len(queued) > 0 {
		f.failures[path] = queued[1:]
		return Contents{}, queued[0]
	}
	c, ok := f.contents[path]
	if !ok {
		return Contents{}, fmt.Errorf("GET %s | returned http code 404", path)
	}
	return c, nil
}

func (f *fakeClient) Archive(_ context.Context, org, repo string, format config.ArchiveFormat, ref string) (Archive, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archiveCalls = append(f.archiveCalls, archiveCall{org, repo, format, ref})
	a := f.archive
	a.Format = format
	a.Ref = ref
	return a, nil
}

func (f *fakeClient) callsFor(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.contentsCalls {
		if c.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeClient) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contentsCalls) + len(f.archiveCalls)
}

// recordingConnector hands out one client and remembers the selectors asked for.
type recordingConnector struct {
	client    ContentClient
	err       error
	selectors []string
}

func (c *recordingConnector) Connection(name string) (ContentClient, error) {
	c.selectors = append(c.selectors, name)
	if c.err != nil {
		return nil, c.err
	}
	return c.client, nil
}

// widgets returns a client serving a small acme/widgets tree:
//
//	src/
//	  main.go
//	  util/
//	    strings.go
//	README.md
func widgets() *fakeClient {
	f := newFakeClient()
	f.contents[""] = Listing(
		EntryDescriptor{Type: "dir", Name: "src", Path: "src", Size: 0},
		EntryDescriptor{Type: "file", Name: "README.md", Path: "README.md", Size: 120},
	)
	f.contents["src"] = Listing(
		EntryDescriptor{Type: "file", Name: "main.go", Path: "src/main.go", Size: 42},
		EntryDescriptor{Type: "dir", Name: "util", Path: "src/util"},
	)
	f.contents["src/util"] = Listing(
		EntryDescriptor{Type: "file", Name: "strings.go", Path: "src/util/strings.go", Size: 7},
	)
	f.contents["README.md"] = FileBody([]byte("# Widgets\n"))
	f.contents["src/main.go"] = FileBody([]byte("package main\n"))
	f.contents["src/util/strings.go"] = FileBody([]byte("package util\n"))
	return f
}
