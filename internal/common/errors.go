package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// navigation
	ErrUnknownRoute = errors.New("unknown route")
)
