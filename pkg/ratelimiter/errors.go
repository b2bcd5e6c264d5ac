package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter.invalid_config")
	ErrInvalidTokenCount = errors.New("ratelimiter.invalid_token_count")
	ErrMissingKey        = errors.New("ratelimiter.missing_key")
)
