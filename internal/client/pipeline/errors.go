package pipeline

import "errors"

var (
	// ErrInvalidConfiguration reports an unknown filter or sort key, an
	// unparsable filter value or an impossible page window.
	ErrInvalidConfiguration = errors.New("invalid list configuration")

	// ErrStale is returned by View.Load when a newer load superseded it.
	ErrStale = errors.New("stale response discarded")
)
