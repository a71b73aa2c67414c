package domain

import "errors"

var (
	// ErrUnauthenticated is returned when a request carries no resolvable user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrArticleNotFound is returned for lookups of unknown article IDs.
	ErrArticleNotFound = errors.New("article not found")
	// ErrInvalidActivity is returned for activity rows that fail validation.
	ErrInvalidActivity = errors.New("invalid activity")
)
