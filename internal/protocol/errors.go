package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Engine layer.
	ErrEmptyPattern  = "E_EMPTY_PATTERN"
	ErrNoMatches     = "E_NO_MATCHES"
	ErrNoReplacement = "E_NO_REPLACEMENT"
	ErrNoVolume      = "E_NO_VOLUME"
	ErrNotAdjusting  = "E_NOT_ADJUSTING"

	// Template store / import.
	ErrPatternNotFound = "E_PATTERN_NOT_FOUND"
	ErrImportFailed    = "E_IMPORT_FAILED"

	ErrBadRequest = "E_BAD_REQUEST"
	ErrInternal   = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrEmptyPattern:    {},
	ErrNoMatches:       {},
	ErrNoReplacement:   {},
	ErrNoVolume:        {},
	ErrNotAdjusting:    {},
	ErrPatternNotFound: {},
	ErrImportFailed:    {},
	ErrBadRequest:      {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
