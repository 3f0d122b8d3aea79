package file

import "errors"

var (
	ErrDuplicateID     = errors.New("file id already exists")
	ErrInvalidName     = errors.New("file name must not be empty")
	ErrInvalidCategory = errors.New("unknown file category")
	ErrInvalidSize     = errors.New("file size must not be negative")
	ErrMissingID       = errors.New("file id is required")
	ErrNotFound        = errors.New("file not found")
)
