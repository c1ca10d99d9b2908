package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrInvalidStatus          = errors.New("unknown campaign status")
	ErrInvalidAction          = errors.New("unknown admin action")
	ErrInvalidURLType         = errors.New("invalid url type")
	ErrInvalidStateTransition = errors.New("invalid campaign state transition")
	ErrNoActionAvailable      = errors.New("no action available for current status")
	ErrReminderNotDue         = errors.New("campaign has no date for this reminder")
	ErrForbidden              = errors.New("actor may not change this campaign")
	ErrWriteNotPermitted      = errors.New("write credentials are not configured")
)
