package errors

import "errors"

var (
	ErrInvalidLoginInput  = errors.New("id and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
