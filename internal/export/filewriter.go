package export

import "io"

// PendingFile is a file being written. Close publishes it at its path; Abort
// discards it and leaves any previous file at that path untouched.
type PendingFile interface {
	io.WriteCloser
	Abort()
}

// FileWriter abstracts filesystem operations for exporting repository trees
// and archives.
type FileWriter interface {
	// Write creates or overwrites a file, creating missing parent directories.
	Write(path string, data []byte) error

	// Create opens a file for streaming; the content becomes visible at path
	// once the returned file is closed without error.
	Create(path string) (PendingFile, error)

	// MkdirAll creates a directory path and all necessary parents.
	MkdirAll(path string) error

	// Remove deletes a file or directory (recursively).
	Remove(path string) error

	// Exists reports whether the given path exists.
	Exists(path string) bool
}
