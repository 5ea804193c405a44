package edit

import "errors"

// Caller-visible failures. None of them leave a partial mutation
// behind: an operation either applies its full cell delta or applies
// nothing.
var (
	// ErrNoVolume means the engine was handed no volume to borrow.
	ErrNoVolume = errors.New("no volume attached")

	// ErrNoMatches means a replace was attempted with an empty match list.
	ErrNoMatches = errors.New("no matches to replace")

	// ErrNoReplacement means a replace was attempted with no replacement patterns.
	ErrNoReplacement = errors.New("no replacement pattern")

	// ErrNotAdjusting means an adjustment call arrived while idle.
	ErrNotAdjusting = errors.New("no adjustment in progress")
)
