package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSFileWriter implements FileWriter using the real filesystem. Files are
// written to a temporary sibling and renamed into place.
type OSFileWriter struct{}

var _ FileWriter = (*OSFileWriter)(nil)

func (w *OSFileWriter) Write(path string, data []byte) error {
	f, err := w.create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

func (w *OSFileWriter) Create(path string) (PendingFile, error) {
	f, err := w.create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (w *OSFileWriter) create(path string) (*atomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	return &atomicFile{File: tmp, target: path}, nil
}

func (w *OSFileWriter) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (w *OSFileWriter) Remove(path string) error {
	return os.RemoveAll(path)
}

func (w *OSFileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type atomicFile struct {
	*os.File
	target string
}

func (f *atomicFile) Close() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), f.target); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("moving %s into place: %w", f.target, err)
	}
	return nil
}

// Abort removes the temporary file without touching the target.
func (f *atomicFile) Abort() {
	f.File.Close()
	os.Remove(f.Name())
}
