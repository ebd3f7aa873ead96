package reader

import "context"

// File is a leaf of a repository tree. Its content is fetched on every call
// to Content and never kept.
type File struct {
	repo *Repository
	path string
	name string
	size int64
	kind string
}

func newFile(repo *Repository, d EntryDescriptor) *File {
	return &File{repo: repo, path: d.Path, name: d.Name, size: d.Size, kind: d.Type}
}

func (f *File) Name() string { return f.name }
func (f *File) Path() string { return f.path }
func (f *File) IsDir() bool  { return false }
func (f *File) node()        {}

// Size is the size reported by the remote listing.
func (f *File) Size() int64 { return f.size }

// Type is the remote entry type: "file", "symlink" or "submodule".
func (f *File) Type() string { return f.kind }

// Content fetches the file body. Client errors are returned unchanged.
func (f *File) Content(ctx context.Context) ([]byte, error) {
	contents, err := f.repo.ReadPath(ctx, f.path)
	if err != nil {
		return nil, err
	}
	if contents.Kind != ContentsFile {
		return nil, &NotFileError{Path: f.path}
	}
	return contents.Body, nil
}
