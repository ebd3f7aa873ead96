package reader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by errors returned when a name or path does not
// exist among the loaded children of a directory.
var ErrNotFound = errors.New("entry not found")

// ConfigurationError reports a target that cannot be read.
type ConfigurationError struct {
	Missing []string // "organization" and/or "repository name"
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not set", strings.Join(e.Missing, " and "))
}

// EntryNotFoundError reports a missing child of Dir.
type EntryNotFoundError struct {
	Dir  string
	Name string
}

func (e *EntryNotFoundError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("%q not found in repository root", e.Name)
	}
	return fmt.Sprintf("%q not found in %q", e.Name, e.Dir)
}

func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotDirectoryError is returned when a path expected to hold a listing
// answered with a file body.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%q is not a directory", e.Path)
}

// NotFileError is returned when a file path answered with a listing.
type NotFileError struct {
	Path string
}

func (e *NotFileError) Error() string {
	return fmt.Sprintf("%q is not a file", e.Path)
}
