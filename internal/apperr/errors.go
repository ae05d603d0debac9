// Package apperr holds sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrConflict              = errors.New("conflict")
	ErrInvalidMode           = errors.New("invalid analysis mode")
	ErrNoData                = errors.New("no entries in the analysis window")
	ErrSummarizerUnavailable = errors.New("summarizer not configured")
)
