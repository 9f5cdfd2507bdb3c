package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports a lookup for a record that does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrNotSignedIn is returned by operations that require a session.
var ErrNotSignedIn = errors.New("not signed in")

// ConflictError reports an operation that would double-apply a record that
// must exist at most once (e.g. re-inserting an earned achievement).
type ConflictError struct {
	Resource string
	Key      string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Key)
}

// ValidationError carries field-level messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "invalid input (" + strings.Join(parts, "; ") + ")"
}
