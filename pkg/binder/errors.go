package binder

import "errors"

var (
	ErrInvalidQuery         = errors.New("binder.invalid_query")
	ErrInvalidPath          = errors.New("binder.invalid_path")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
)
