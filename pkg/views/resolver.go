package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/devicekit/pkg/cache"
)

// DefaultFormat is the format every non-layout lookup falls back to.
const DefaultFormat = "html"

// Lookup finds template candidates. Implementations return ErrNotFound or an
// empty slice when nothing matches.
type Lookup interface {
	Find(ctx context.Context, s Search) ([]Candidate, error)
}

// Decorator materializes a candidate into a usable template.
type Decorator func(ctx context.Context, c Candidate) (*Template, error)

// decorating is implemented by lookups that know how to load their own candidates.
type decorating interface {
	Decorate(ctx context.Context, c Candidate) (*Template, error)
}

// Resolver resolves templates with format fallback and a shared cache.
type Resolver struct {
	lookup        Lookup
	decorate      Decorator
	entries       *cache.LRU[Key, Entry]
	caching       bool
	defaultFormat string
	logger        *slog.Logger
}

// NewResolver creates a resolver over lookup.
func NewResolver(lookup Lookup, opts ...Option) *Resolver {
	if lookup == nil {
		panic("views: nil lookup")
	}

	cfg := &options{
		caching:       true,
		cacheSize:     defaultCacheSize,
		defaultFormat: DefaultFormat,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Resolver{
		lookup:        lookup,
		decorate:      cfg.decorator,
		entries:       cache.NewLRU[Key, Entry](cfg.cacheSize),
		caching:       cfg.caching,
		defaultFormat: cfg.defaultFormat,
		logger:        cfg.logger,
	}
	if r.decorate == nil {
		if d, ok := lookup.(decorating); ok {
			r.decorate = d.Decorate
		} else {
			r.decorate = BareDecorator
		}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// NewFromConfig creates a resolver configured from cfg. Caching in "auto"
// mode is enabled; pass WithCaching to decide otherwise. Explicit options
// override config values.
func NewFromConfig(cfg Config, lookup Lookup, opts ...Option) *Resolver {
	base := []Option{WithCaching(cfg.CachingEnabled(true))}
	if cfg.CacheSize > 0 {
		base = append(base, WithCacheSize(cfg.CacheSize))
	}
	if cfg.DefaultFormat != "" {
		base = append(base, WithDefaultFormat(cfg.DefaultFormat))
	}
	return NewResolver(lookup, append(base, opts...)...)
}

// BareDecorator wraps a candidate without loading any payload.
func BareDecorator(_ context.Context, c Candidate) (*Template, error) {
	return &Template{Candidate: c}, nil
}

// Caching reports whether the shared cache is consulted.
func (r *Resolver) Caching() bool { return r.caching }

// CacheStats returns the shared cache counters.
func (r *Resolver) CacheStats() cache.Stats { return r.entries.Stats() }

// Resolve returns the templates matching q. A format-specific template is
// preferred; when it is missing the default format is tried once. Layouts
// never fall back.
func (r *Resolver) Resolve(ctx context.Context, q Query) ([]*Template, error) {
	if q.Name == "" {
		return nil, ErrInvalidQuery
	}
	if q.Format == "" {
		q.Format = r.defaultFormat
	}

	tpls, err := r.find(ctx, q, q.Format)
	if err == nil || q.Prefix == LayoutsPrefix || q.Format == r.defaultFormat || !errors.Is(err, ErrNotFound) {
		return tpls, err
	}

	r.logger.DebugContext(ctx, "template format fallback",
		slog.String("template", virtualPath(q.Prefix, q.Name)),
		slog.String("from", q.Format),
		slog.String("to", r.defaultFormat),
	)

	tpls, err = r.find(ctx, q, r.defaultFormat)
	if err != nil {
		var missing *MissingTemplateError
		if errors.As(err, &missing) {
			missing.Formats = []string{q.Format, r.defaultFormat}
		}
		return nil, err
	}
	return tpls, nil
}

// ResolveOne returns the first template matching q.
func (r *Resolver) ResolveOne(ctx context.Context, q Query) (*Template, error) {
	tpls, err := r.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return tpls[0], nil
}

// Exists reports whether q resolves to at least one template.
func (r *Resolver) Exists(ctx context.Context, q Query) bool {
	_, err := r.Resolve(ctx, q)
	return err == nil
}

// find performs a single lookup at format, through the cache when allowed.
func (r *Resolver) find(ctx context.Context, q Query, format string) ([]*Template, error) {
	locals := sortedLocals(q.Locals)
	candidates, err := r.candidates(ctx, Search{
		Name:    q.Name,
		Prefix:  q.Prefix,
		Partial: q.Partial,
		Formats: []string{format},
		Locals:  locals,
	})
	if err != nil {
		return nil, err
	}

	var tpls []*Template
	if r.caching && q.CacheKey != "" {
		tpls, err = r.cached(ctx, newKey(q, format, locals), q.Partial, locals, candidates)
	} else {
		tpls, err = r.materialize(ctx, q.Partial, locals, candidates)
	}
	if err != nil {
		return nil, err
	}

	if len(tpls) == 0 {
		return nil, &MissingTemplateError{
			Name:    q.Name,
			Prefix:  q.Prefix,
			Partial: q.Partial,
			Formats: []string{format},
		}
	}
	return tpls, nil
}

// candidates runs the lookup, mapping not-found to an empty set.
func (r *Resolver) candidates(ctx context.Context, s Search) ([]Candidate, error) {
	found, err := r.lookup.Find(ctx, s)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", virtualPath(s.Prefix, s.Name), err)
	}
	return found, nil
}

// cached returns the stored entry for key unless the fresh candidates show it
// is stale. Materialization runs outside the cache lock; concurrent misses may
// materialize the same key more than once and the freshest write wins.
func (r *Resolver) cached(ctx context.Context, key Key, partial bool, locals []string, fresh []Candidate) ([]*Template, error) {
	if entry, ok := r.entries.Get(key); ok && !stale(entry, fresh) {
		return entry.Templates, nil
	}

	tpls, err := r.materialize(ctx, partial, locals, fresh)
	if err != nil {
		return nil, err
	}

	entry := r.entries.Compute(key, func(current Entry, ok bool) (Entry, bool) {
		if ok && !stale(current, fresh) {
			return current, false
		}
		return Entry{Templates: tpls}, true
	})
	return entry.Templates, nil
}

// stale reports whether fresh candidates invalidate a cached entry.
// A cached absence has no timestamp to compare against and is always stale.
func stale(entry Entry, fresh []Candidate) bool {
	if len(entry.Templates) == 0 || len(fresh) == 0 {
		return true
	}
	latest := entry.MaxUpdatedAt()
	for _, c := range fresh {
		if c.UpdatedAt.After(latest) {
			return true
		}
	}
	return false
}

func (r *Resolver) materialize(ctx context.Context, partial bool, locals []string, candidates []Candidate) ([]*Template, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	tpls := make([]*Template, 0, len(candidates))
	for _, c := range candidates {
		t, err := r.decorate(ctx, c)
		if err != nil {
			return nil, errors.Join(ErrMaterialize, fmt.Errorf("%s: %w", c.Identifier, err))
		}
		t.Candidate = c
		t.Partial = partial
		t.Locals = locals
		tpls = append(tpls, t)
	}
	return tpls, nil
}
