package rowstore

import "errors"

var (
	// ErrCredentialsMissing means neither a service account nor an API key was configured.
	ErrCredentialsMissing = errors.New("row store credentials are not configured")
	// ErrWriteNotPermitted means the client only holds read-level credentials.
	ErrWriteNotPermitted = errors.New("row store write not permitted with read-only credentials")
	ErrColumnNotFound    = errors.New("row store column not found")
	ErrRowNotFound       = errors.New("row store row not found")
	ErrInvalidAddress    = errors.New("invalid cell address")
)
