package negotiate

import "errors"

var (
	// ErrInvalidConfig indicates a rejected registration.
	ErrInvalidConfig = errors.New("negotiate.invalid_config")

	// ErrUnsupportedFormat indicates a format that cannot be forced or toggled.
	ErrUnsupportedFormat = errors.New("negotiate.unsupported_format")

	// ErrNoStore indicates a preference change without a configured store.
	ErrNoStore = errors.New("negotiate.no_store")
)
