package errors

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid notification query")
	ErrInvalidNotification  = errors.New("invalid notification")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrForbidden            = errors.New("notifications are visible to admins only")
)
