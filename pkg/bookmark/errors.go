package bookmark

import "errors"

// Construction errors.
var (
	ErrInvalidLocation   = errors.New("location is not a file-system path")
	ErrEncodingFailed    = errors.New("encoding location failed")
	ErrMalformedBookmark = errors.New("bookmark data is malformed")
	ErrNoProvider        = errors.New("bookmark is not bound to a provider")
)

// Resolution and scoped-access errors.
var (
	ErrUnresolvable    = errors.New("bookmark cannot be resolved")
	ErrBookmarkInvalid = errors.New("bookmark is invalid")
	ErrAccessDenied    = errors.New("scoped access to resource denied")
)

// Persistence errors.
var (
	ErrStaleNeedsRebuild = errors.New("bookmark is stale and needs rebuild")
)

// Target-type lookup errors.
var (
	ErrTargetTypeUnavailable = errors.New("target type unavailable")
	ErrInvalidTargetType     = errors.New("invalid target type")
)
