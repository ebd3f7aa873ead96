package reader

import "fmt"

// Target identifies a repository and the connection used to reach it.
// It is a value: copies never share state.
type Target struct {
	Organization string
	Name         string
	Connection   string // opaque selector, DefaultConnection when empty
	Ref          string // branch, tag or commit; empty for the default branch
}

// ConnectionName returns the configured selector or DefaultConnection.
func (t Target) ConnectionName() string {
	if t.Connection == "" {
		return DefaultConnection
	}
	return t.Connection
}

// WithOverrides returns a copy of t where every non-empty argument replaces
// the matching field.
func (t Target) WithOverrides(org, name, connection string) Target {
	if org != "" {
		t.Organization = org
	}
	if name != "" {
		t.Name = name
	}
	if connection != "" {
		t.Connection = connection
	}
	return t
}

// Validate checks that the target addresses a repository.
func (t Target) Validate() error {
	var missing []string
	if t.Organization == "" {
		missing = append(missing, "organization")
	}
	if t.Name == "" {
		missing = append(missing, "repository name")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// FullName returns "org/repo", with "@ref" appended when a ref is set.
func (t Target) FullName() string {
	if t.Ref == "" {
		return fmt.Sprintf("%s/%s", t.Organization, t.Name)
	}
	return fmt.Sprintf("%s/%s@%s", t.Organization, t.Name, t.Ref)
}
