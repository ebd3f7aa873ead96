package reader

// Node is a named, path-addressable entry of a repository tree. It is either
// a *File or a *Directory; no other implementations exist.
type Node interface {
	// Name is the last path segment, empty for the repository root.
	Name() string
	// Path is relative to the repository root.
	Path() string
	IsDir() bool

	node()
}

var (
	_ Node = (*File)(nil)
	_ Node = (*Directory)(nil)
)

// classify turns remote descriptors into nodes. Only "dir" descriptors
// become directories; files, symlinks and submodules are leaves.
func classify(repo *Repository, descriptors []EntryDescriptor) []Node {
	nodes := make([]Node, 0, len(descriptors))
	for _, d := range descriptors {
		if d.IsDir() {
			nodes = append(nodes, newNamedDirectory(repo, d.Path, d.Name))
			continue
		}
		nodes = append(nodes, newFile(repo, d))
	}
	return nodes
}
