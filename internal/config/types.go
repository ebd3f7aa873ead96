package config

import (
	"fmt"
	"strings"
)

// ArchiveFormat is the packaging of a repository snapshot.
type ArchiveFormat string

const (
	Zipball ArchiveFormat = "zipball"
	Tarball ArchiveFormat = "tarball"
)

// ValidArchiveFormats returns all supported archive formats.
func ValidArchiveFormats() []ArchiveFormat {
	return []ArchiveFormat{Zipball, Tarball}
}

// IsValid checks whether the format is one the remote host serves.
func (f ArchiveFormat) IsValid() bool {
	switch f {
	case Zipball, Tarball:
		return true
	}
	return false
}

// FileExtension returns the suffix of a downloaded archive.
func (f ArchiveFormat) FileExtension() string {
	switch f {
	case Zipball:
		return ".zip"
	case Tarball:
		return ".tar.gz"
	}
	return ""
}

// RepoRef represents a parsed reference like "org/repo@main".
type RepoRef struct {
	Org  string // GitHub organisation or user
	Repo string // Repository name
	Ref  string // Git ref: tag, branch, or commit SHA; empty for the default branch
}

// ParseRepoRef parses "org/repo" or "org/repo@ref".
func ParseRepoRef(raw string) (RepoRef, error) {
	repoPart, ref, hasRef := strings.Cut(raw, "@")
	if hasRef && ref == "" {
		return RepoRef{}, fmt.Errorf("invalid reference %q: empty ref after @", raw)
	}

	segments := strings.Split(repoPart, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid reference %q: must be org/repo[@ref]", raw)
	}

	return RepoRef{
		Org:  segments[0],
		Repo: segments[1],
		Ref:  ref,
	}, nil
}

// Raw returns the canonical string representation of the ref.
func (r RepoRef) Raw() string {
	if r.Ref == "" {
		return r.RepoFullName()
	}
	return fmt.Sprintf("%s/%s@%s", r.Org, r.Repo, r.Ref)
}

// RepoFullName returns "org/repo".
func (r RepoRef) RepoFullName() string {
	return fmt.Sprintf("%s/%s", r.Org, r.Repo)
}
