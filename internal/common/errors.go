package common

import "errors"

var (
	// ErrorNotFound is returned by repositories when no row matches.
	ErrorNotFound = errors.New("not found")

	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")
)
