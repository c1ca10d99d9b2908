package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid outreach request")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrForbidden         = errors.New("outreach requires an admin")
	ErrWriteNotPermitted = errors.New("write credentials are not configured")
)
