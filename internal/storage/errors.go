package storage

import "errors"

var (
	ErrRunNotFound   = errors.New("storage: run not found")
	ErrLetterIndex   = errors.New("storage: letter index out of range")
	ErrInvalidStride = errors.New("storage: stride must be positive")
)
