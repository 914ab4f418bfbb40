package util

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrResultNotFound   = errors.New("no such result")
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidOption    = errors.New("correct option must be one of A, B, C, D")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrInvalidSheet     = errors.New("invalid question sheet")
)
