package views

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates that no template matched a query.
	ErrNotFound = errors.New("views.not_found")

	// ErrInvalidQuery indicates a query without a template name.
	ErrInvalidQuery = errors.New("views.invalid_query")

	// ErrMaterialize indicates a template was found but could not be loaded or parsed.
	ErrMaterialize = errors.New("views.materialize_failed")
)

// MissingTemplateError describes a failed resolution. It matches ErrNotFound
// with errors.Is.
type MissingTemplateError struct {
	Name    string
	Prefix  string
	Partial bool
	Formats []string
}

func (e *MissingTemplateError) Error() string {
	kind := "template"
	if e.Partial {
		kind = "partial"
	}
	path := e.Name
	if e.Prefix != "" {
		path = e.Prefix + "/" + e.Name
	}
	return fmt.Sprintf("missing %s %q with formats [%s]", kind, path, strings.Join(e.Formats, ", "))
}

func (e *MissingTemplateError) Unwrap() error { return ErrNotFound }
