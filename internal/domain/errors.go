package domain

import "errors"

var (
	ErrParse             = errors.New("malformed data source")
	ErrEmptyInput        = errors.New("data source contains no values")
	ErrUnsupportedFormat = errors.New("unsupported template format")
	ErrNotFillable       = errors.New("pdf contains no form fields")
	ErrNoJobsFound       = errors.New("no job blocks found in source document")
	ErrFontMissing       = errors.New("arabic font resources missing or unreadable")
	ErrExternalService   = errors.New("extraction service failed")
	ErrSessionInvalid    = errors.New("session token invalid or expired")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrStoreFailed       = errors.New("storing generated document failed")
)
