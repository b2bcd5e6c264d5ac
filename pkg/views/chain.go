package views

import (
	"context"
	"errors"
	"io/fs"
)

// Chain searches several lookups in order, like a list of view paths. The
// first lookup reporting candidates wins; later lookups are not consulted.
type Chain []Lookup

// Find returns the candidates of the first lookup that has any.
func (c Chain) Find(ctx context.Context, s Search) ([]Candidate, error) {
	for _, l := range c {
		found, err := l.Find(ctx, s)
		if errors.Is(err, ErrNotFound) || (err == nil && len(found) == 0) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return found, nil
	}
	return nil, ErrNotFound
}

// Decorate asks each lookup in turn to materialize the candidate. Lookups
// that do not own the identifier report a not-found error and are skipped.
func (c Chain) Decorate(ctx context.Context, cand Candidate) (*Template, error) {
	var errs []error
	for _, l := range c {
		d, ok := l.(decorating)
		if !ok {
			continue
		}
		t, err := d.Decorate(ctx, cand)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return BareDecorator(ctx, cand)
}
