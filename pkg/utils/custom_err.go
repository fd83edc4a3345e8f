package utils

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrInvalidPage             = errors.New("invalid page parameter")
	ErrInvalidPageSize         = errors.New("invalid page size parameter")
	ErrItineraryNotFound       = errors.New("itinerary not found")
	ErrCatalogItemNotFound     = errors.New("catalog item not found")
	ErrUnknownDomain           = errors.New("unknown catalog domain")
	ErrDayIndexOutOfRange      = errors.New("day index out of range")
	ErrVersionConflict         = errors.New("itinerary version conflict")
	ErrArtifactMissing         = errors.New("similarity artifacts missing")
	ErrArtifactVersionMismatch = errors.New("similarity artifacts version mismatch")
	ErrEmbeddingFailed         = errors.New("embedding provider error")
	ErrDatabaseError           = errors.New("database error")
)
