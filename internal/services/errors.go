package services

import "errors"

// Dashboard service errors
var (
	// ErrDatasetUnavailable wraps any failure to read or process the readings source.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrInvalidMonthKey is returned for keys that are not YYYY-MM.
	ErrInvalidMonthKey = errors.New("invalid month key")
)
