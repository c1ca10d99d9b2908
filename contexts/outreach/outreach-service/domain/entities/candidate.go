package entities

import "strings"

// Candidate is one row of the selected sheet. Fields holds every column by
// header name and feeds both template conditions and placeholders.
type Candidate struct {
	InfluencerID string
	Email        string
	Fields       map[string]string
}

func (c Candidate) Field(name string) string {
	return c.Fields[strings.TrimSpace(name)]
}

const StatusContacted = "contacted"
