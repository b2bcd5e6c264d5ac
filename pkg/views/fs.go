package views

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"maps"
)

// FSLookup finds html/template sources in a file system. Modification times
// come from fs.Stat, so os.DirFS picks up edits without a restart.
type FSLookup struct {
	fsys  fs.FS
	ext   string
	funcs template.FuncMap
}

// FSOption configures an FSLookup.
type FSOption func(*FSLookup)

// WithExtension sets the source file extension, ".tmpl" by default.
func WithExtension(ext string) FSOption {
	if ext == "" {
		panic("WithExtension: extension cannot be empty")
	}
	return func(l *FSLookup) { l.ext = ext }
}

// WithFuncs registers template functions available at parse time.
func WithFuncs(funcs template.FuncMap) FSOption {
	return func(l *FSLookup) {
		if l.funcs == nil {
			l.funcs = template.FuncMap{}
		}
		maps.Copy(l.funcs, funcs)
	}
}

// NewFSLookup creates a lookup rooted at fsys.
func NewFSLookup(fsys fs.FS, opts ...FSOption) *FSLookup {
	if fsys == nil {
		panic("views: nil file system")
	}
	l := &FSLookup{fsys: fsys, ext: DefaultExtension}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find stats one path per requested format.
func (l *FSLookup) Find(_ context.Context, s Search) ([]Candidate, error) {
	var found []Candidate
	for _, format := range s.Formats {
		p := sourcePath(s, format, l.ext)
		info, err := fs.Stat(l.fsys, p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		found = append(found, Candidate{
			Identifier:  p,
			VirtualPath: virtualPath(s.Prefix, s.Name),
			Format:      format,
			UpdatedAt:   info.ModTime(),
		})
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found, nil
}

// Decorate reads and parses the candidate source.
func (l *FSLookup) Decorate(_ context.Context, c Candidate) (*Template, error) {
	src, err := fs.ReadFile(l.fsys, c.Identifier)
	if err != nil {
		return nil, err
	}
	t, err := parseHTML(c.Identifier, src, l.funcs)
	if err != nil {
		return nil, err
	}
	return &Template{Candidate: c, HTML: t}, nil
}
