package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbout22/ghtree/internal/config"
	"github.com/cbout22/ghtree/internal/reader"
)

// memWriter implements FileWriter in memory.
type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

var _ FileWriter = (*memWriter)(nil)

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string][]byte), dirs: make(map[string]bool)}
}

func (w *memWriter) Write(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = append([]byte(nil), data...)
	return nil
}

func (w *memWriter) Create(path string) (PendingFile, error) {
	return &memFile{w: w, path: path}, nil
}

func (w *memWriter) MkdirAll(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[path] = true
	return nil
}

func (w *memWriter) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
	delete(w.dirs, path)
	return nil
}

func (w *memWriter) Exists(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, isFile := w.files[path]
	return isFile || w.dirs[path]
}

func (w *memWriter) paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for p := range w.files {
		out = append(out, filepath.ToSlash(p))
	}
	sort.Strings(out)
	return out
}

type memFile struct {
	bytes.Buffer
	w    *memWriter
	path string
}

func (f *memFile) Close() error {
	return f.w.Write(f.path, f.Bytes())
}

func (f *memFile) Abort() {}

// failingWriter writes directories to disk but fails every file write.
type failingWriter struct {
	OSFileWriter
}

func (w *failingWriter) Write(string, []byte) error {
	return errors.New("disk full")
}

// treeClient serves a fixed tree for reader.Repository.
type treeClient map[string]reader.Contents

func (c treeClient) Contents(_ context.Context, _, _, path, _ string) (reader.Contents, error) {
	if v, ok := c[path]; ok {
		return v, nil
	}
	return reader.Contents{}, fmt.Errorf("GET %s | returned http code 404", path)
}

func (c treeClient) Archive(context.Context, string, string, config.ArchiveFormat, string) (reader.Archive, error) {
	return reader.Archive{}, errors.New("not supported")
}

func docsTree() treeClient {
	return treeClient{
		"": reader.Listing(
			reader.EntryDescriptor{Type: "dir", Name: "docs", Path: "docs"},
			reader.EntryDescriptor{Type: "file", Name: "README.md", Path: "README.md", Size: 10},
			reader.EntryDescriptor{Type: "submodule", Name: "vendor", Path: "vendor"},
		),
		"docs": reader.Listing(
			reader.EntryDescriptor{Type: "file", Name: "index.md", Path: "docs/index.md", Size: 6},
			reader.EntryDescriptor{Type: "dir", Name: "api", Path: "docs/api"},
		),
		"docs/api": reader.Listing(
			reader.EntryDescriptor{Type: "file", Name: "v1.md", Path: "docs/api/v1.md", Size: 3},
		),
		"README.md":      reader.FileBody([]byte("# Widgets\n")),
		"docs/index.md":  reader.FileBody([]byte("index\n")),
		"docs/api/v1.md": reader.FileBody([]byte("v1\n")),
	}
}

func rootOf(t *testing.T, client reader.ContentClient) *reader.Directory {
	t.Helper()
	root, err := reader.Open(reader.Static(client), reader.Target{Organization: "acme", Name: "widgets"})
	require.NoError(t, err)
	return root
}

func TestExport_WholeRepository(t *testing.T) {
	t.Parallel()
	w := newMemWriter()
	result, err := New(w, nil).Export(context.Background(), rootOf(t, docsTree()), "out")
	require.NoError(t, err)

	assert.Equal(t, []string{"out/README.md", "out/docs/api/v1.md", "out/docs/index.md"}, w.paths())
	assert.Equal(t, []byte("# Widgets\n"), w.files[filepath.Join("out", "README.md")])
	assert.Equal(t, Result{TargetDir: "out", Files: 3, Dirs: 2, Skipped: 1, Bytes: 19}, result)
	assert.True(t, w.dirs[filepath.Join("out", "docs", "api")])
}

func TestExport_Subdirectory(t *testing.T) {
	t.Parallel()
	w := newMemWriter()
	root := rootOf(t, docsTree())
	node, err := root.Lookup(context.Background(), "docs")
	require.NoError(t, err)

	result, err := New(w, nil).Export(context.Background(), node.(*reader.Directory), "site")
	require.NoError(t, err)

	assert.Equal(t, []string{"site/api/v1.md", "site/index.md"}, w.paths())
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 1, result.Dirs)
}

func TestExport_StopsOnFetchError(t *testing.T) {
	t.Parallel()
	tree := docsTree()
	delete(tree, "docs/api/v1.md")
	w := newMemWriter()

	result, err := New(w, nil).Export(context.Background(), rootOf(t, tree), "out")
	assert.ErrorContains(t, err, "downloading docs/api/v1.md")
	assert.Equal(t, 1, result.Files)
}

func TestExport_OSFileWriter(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "checkout")

	// A stale file is replaced.
	require.NoError(t, os.MkdirAll(dest, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "README.md"), []byte("stale"), 0644))

	_, err := New(&OSFileWriter{}, nil).Export(context.Background(), rootOf(t, docsTree()), dest)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Widgets\n", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "docs", "api", "v1.md"))
	require.NoError(t, err)
	assert.Equal(t, "v1\n", string(got))

	_, err = os.Stat(filepath.Join(dest, "vendor"))
	assert.True(t, os.IsNotExist(err), "submodules are not exported")
}

func TestOSFileWriter_CreateIsAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "archive.zip")
	w := &OSFileWriter{}

	f, err := w.Create(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("PK"))
	require.NoError(t, err)
	assert.False(t, w.Exists(target), "content is not visible before Close")

	require.NoError(t, f.Close())
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestRelativePath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "docs/a.md", relativePath("", "docs/a.md"))
	assert.Equal(t, "a.md", relativePath("docs", "docs/a.md"))
	assert.Equal(t, "api/v1.md", relativePath("docs", "docs/api/v1.md"))
	assert.Equal(t, "x.md", relativePath("docs", "elsewhere/x.md"))
}

func TestExport_FailedWriteKeepsExistingFile(t *testing.T) {
	t.Parallel()
	dest := t.TempDir()
	existing := filepath.Join(dest, "docs", "index.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("local copy"), 0644))

	_, err := New(&failingWriter{}, nil).Export(context.Background(), rootOf(t, docsTree()), dest)
	assert.ErrorContains(t, err, "disk full")

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "local copy", string(got))
}

func TestExport_RejectsPathsOutsideDestination(t *testing.T) {
	t.Parallel()
	tree := treeClient{
		"": reader.Listing(
			reader.EntryDescriptor{Type: "file", Name: "evil.md", Path: "../evil.md", Size: 4},
		),
		"../evil.md": reader.FileBody([]byte("evil")),
	}
	w := newMemWriter()

	_, err := New(w, nil).Export(context.Background(), rootOf(t, tree), "out")
	assert.ErrorContains(t, err, "refusing to export ../evil.md outside out")
	assert.Empty(t, w.paths())
}

func TestOSFileWriter_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()
	target := filepath.Join(t.TempDir(), "widgets.zip")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0644))
	w := &OSFileWriter{}

	f, err := w.Create(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)
	f.Abort()

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the temporary file is removed")
}
