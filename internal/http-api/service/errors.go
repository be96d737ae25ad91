package service

import "errors"

// Sentinel errors shared across services. Handlers translate these to HTTP
// status codes with errors.Is.
var (
	ErrTitleNotFound     = errors.New("title not found")
	ErrReviewNotFound    = errors.New("review not found")
	ErrListEntryNotFound = errors.New("list entry not found")
	ErrGenreNotFound     = errors.New("one or more genres not found")
	ErrDuplicateReview   = errors.New("title already reviewed by this user")
	ErrDuplicateGenre    = errors.New("genre already exists")
	ErrInvalidListStatus = errors.New("invalid list status")
)
