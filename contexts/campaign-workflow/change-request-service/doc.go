// Package changerequestservice implements schedule change requests for campaign rows.
//
// Requests are stored as an append-only event log on the campaign row and folded into
// their current state on read. Approval writes the new date in the same batch.
package changerequestservice
