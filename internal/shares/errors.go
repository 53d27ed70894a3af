package shares

import "errors"

var (
	ErrNotFound     = errors.New("share link not found")
	ErrExpired      = errors.New("share link expired")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
