package errors

import "errors"

var (
	ErrInvalidMessage = errors.New("message is required and must be at most 2000 characters")
	ErrForbidden      = errors.New("campaign is not accessible to this user")
	ErrInvalidFAQ     = errors.New("invalid faq knowledge base")
)
