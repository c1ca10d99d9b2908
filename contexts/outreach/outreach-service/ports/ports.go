package ports

import (
	"context"
	"time"

	"musubime/contexts/outreach/outreach-service/domain/entities"
)

type CandidateRepository interface {
	ListCandidates(ctx context.Context, forceRefresh bool) ([]entities.Candidate, error)
	// MarkContacted writes the outreach status and date of one candidate row.
	MarkContacted(ctx context.Context, influencerID string, status string, date string) error
}

type TemplateRepository interface {
	ListTemplates(ctx context.Context, forceRefresh bool) ([]entities.Template, error)
	// SaveTemplate updates the row with the same id or appends a new one.
	SaveTemplate(ctx context.Context, template entities.Template) (created bool, err error)
}

// OutboundEmail is handed to the notification outbox; delivery is asynchronous.
type OutboundEmail struct {
	InfluencerID string
	To           string
	ToName       string
	Subject      string
	Body         string
	TemplateID   string
}

type Mailer interface {
	Enqueue(ctx context.Context, email OutboundEmail) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

const RoleAdmin = "admin"

type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
