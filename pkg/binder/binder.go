package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// Query binds URL query parameters using `query` tags.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindStruct(v, "query", func(name string) []string { return q[name] }, ErrInvalidQuery)
	}
}

// Path binds route parameters using `path` tags. extract is usually
// chi.URLParam.
func Path(extract func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}
		return bindStruct(v, "path", func(name string) []string {
			if s := extract(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrInvalidPath)
	}
}

// Form binds an application/x-www-form-urlencoded body using `form` tags.
// Requests without a body content type are left untouched.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return nil
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
		}
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindStruct(v, "form", func(name string) []string { return r.PostForm[name] }, ErrInvalidForm)
	}
}
