package domain

import (
	"fmt"
	"strings"
)

// Repo identifies a GitHub repository. Host is empty for github.com.
type Repo struct {
	Host  string
	Owner string
	Name  string
}

// ParseRepo parses "OWNER/REPO" or "HOST/OWNER/REPO".
func ParseRepo(s string) (Repo, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	for _, p := range parts {
		if p == "" {
			return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepo, s)
		}
	}
	switch len(parts) {
	case 2:
		return Repo{Owner: parts[0], Name: parts[1]}, nil
	case 3:
		return Repo{Host: parts[0], Owner: parts[1], Name: parts[2]}, nil
	default:
		return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
}

// IsZero reports whether the repo is unset.
func (r Repo) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

func (r Repo) String() string {
	if r.IsZero() {
		return ""
	}
	if r.Host != "" && r.Host != "github.com" {
		return r.Host + "/" + r.Owner + "/" + r.Name
	}
	return r.Owner + "/" + r.Name
}
