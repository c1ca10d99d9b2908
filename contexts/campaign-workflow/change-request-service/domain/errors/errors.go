package errors

import "errors"

var (
	ErrChangeRequestNotFound = errors.New("change request not found")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrInvalidRequest        = errors.New("invalid change request")
	ErrInvalidRequestType    = errors.New("unknown change request type")
	ErrInvalidDecision       = errors.New("unknown change request decision")
	ErrAlreadyResolved       = errors.New("change request already resolved")
	ErrPendingRequestExists  = errors.New("a pending change request of this type exists")
	ErrForbidden             = errors.New("actor may not access this change request")
	ErrWriteNotPermitted     = errors.New("write credentials are not configured")
)
