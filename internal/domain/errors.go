package domain

import "errors"

// Bookmark target errors
var (
	ErrMissingTarget   = errors.New("either translationId or bookId is required")
	ErrAmbiguousTarget = errors.New("cannot bookmark both translation and book")
	ErrUnknownTarget   = errors.New("unknown bookmark target kind")
)
