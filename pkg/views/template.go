package views

import (
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// LayoutsPrefix is the prefix under which layouts live. Layout lookups never
// fall back to the default format.
const LayoutsPrefix = "layouts"

// Query describes a template to resolve.
type Query struct {
	Name    string
	Prefix  string
	Partial bool
	Format  string
	Locals  []string

	// CacheKey scopes cached results. An empty key disables caching for the
	// query: the lookup always runs and the shared cache is neither read nor
	// written.
	CacheKey string
}

// Search is what a Lookup receives: one path and the acceptable formats in
// preference order.
type Search struct {
	Name    string
	Prefix  string
	Partial bool
	Formats []string
	Locals  []string
}

// Candidate is a template reported by a Lookup before it is materialized.
type Candidate struct {
	// Identifier uniquely names the template source (file path, object key, registry id).
	Identifier string
	// VirtualPath is "<prefix>/<name>" without format or extension.
	VirtualPath string
	Format      string
	UpdatedAt   time.Time
}

// Template is a materialized, immutable template handle.
type Template struct {
	Candidate

	Partial bool
	Locals  []string

	// Exactly one of HTML or Component is set by the shipped lookups.
	HTML      *template.Template
	Component templ.Component
}

// Entry is the cached result of a single lookup.
type Entry struct {
	Templates []*Template
}

// MaxUpdatedAt returns the latest modification time in the entry.
func (e Entry) MaxUpdatedAt() time.Time {
	var latest time.Time
	for _, t := range e.Templates {
		if t.UpdatedAt.After(latest) {
			latest = t.UpdatedAt
		}
	}
	return latest
}

// Key identifies a cache entry.
type Key struct {
	Epoch   string
	Name    string
	Prefix  string
	Partial bool
	Locals  string
}

// sortedLocals returns a sorted copy so argument order never splits the cache.
func sortedLocals(locals []string) []string {
	if len(locals) == 0 {
		return nil
	}
	out := slices.Clone(locals)
	slices.Sort(out)
	return out
}

// localsSeparator cannot occur in a local name, so distinct lists never share a key.
const localsSeparator = "\x00"

func newKey(q Query, format string, locals []string) Key {
	return Key{
		Epoch:   q.CacheKey + "|" + format,
		Name:    q.Name,
		Prefix:  q.Prefix,
		Partial: q.Partial,
		Locals:  strings.Join(locals, localsSeparator),
	}
}

func virtualPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
