package render

import "errors"

var (
	// ErrNoPayload indicates a resolved template carries neither an
	// html/template nor a templ component.
	ErrNoPayload = errors.New("render.no_payload")

	// ErrExecute wraps failures while executing a template.
	ErrExecute = errors.New("render.execute_failed")
)
