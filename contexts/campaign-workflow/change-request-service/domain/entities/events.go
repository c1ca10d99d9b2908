package entities

import (
	"sort"
	"time"
)

const (
	EventCreated  = "change_request.created"
	EventResolved = "change_request.resolved"
)

// Event is one entry of the per-row change request log. Created events carry
// the full request; resolved events carry the decision only.
type Event struct {
	Type          string         `json:"type"`
	RequestID     string         `json:"requestId"`
	Request       *ChangeRequest `json:"request,omitempty"`
	Status        Status         `json:"status,omitempty"`
	AdminResponse string         `json:"adminResponse,omitempty"`
	At            time.Time      `json:"at"`
}

func CreatedEvent(request ChangeRequest) Event {
	snapshot := request
	snapshot.Status = StatusPending
	snapshot.AdminResponse = ""
	snapshot.ResolvedAt = nil
	snapshot.RequestedChanges = append([]FieldChange(nil), request.RequestedChanges...)
	return Event{
		Type:      EventCreated,
		RequestID: request.ID,
		Request:   &snapshot,
		At:        request.CreatedAt,
	}
}

func ResolvedEvent(requestID string, status Status, adminResponse string, at time.Time) Event {
	return Event{
		Type:          EventResolved,
		RequestID:     requestID,
		Status:        status,
		AdminResponse: adminResponse,
		At:            at,
	}
}

// Fold replays events in order. A request is resolved at most once; later
// resolutions and resolutions of unknown ids are ignored. Legacy requests fill
// in ids the event log does not know.
func Fold(events []Event, legacy []ChangeRequest) []ChangeRequest {
	byID := make(map[string]*ChangeRequest)
	order := make([]string, 0, len(events)+len(legacy))

	for _, event := range events {
		switch event.Type {
		case EventCreated:
			if event.Request == nil || event.RequestID == "" {
				continue
			}
			if _, exists := byID[event.RequestID]; exists {
				continue
			}
			request := *event.Request
			request.ID = event.RequestID
			request.Status = StatusPending
			request.AdminResponse = ""
			request.ResolvedAt = nil
			byID[event.RequestID] = &request
			order = append(order, event.RequestID)
		case EventResolved:
			request, ok := byID[event.RequestID]
			if !ok || !request.Pending() {
				continue
			}
			if event.Status != StatusApproved && event.Status != StatusRejected {
				continue
			}
			at := event.At
			request.Status = event.Status
			request.AdminResponse = event.AdminResponse
			request.ResolvedAt = &at
		}
	}

	for _, request := range legacy {
		if request.ID == "" {
			continue
		}
		if _, exists := byID[request.ID]; exists {
			continue
		}
		copied := request
		byID[request.ID] = &copied
		order = append(order, request.ID)
	}

	out := make([]ChangeRequest, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
