// Package notificationservice implements the webhook and email outbox for the Musubime app.
//
// Other contexts publish delivery requests through the event bus. The module persists them
// in the outbox and exposes the relay worker and an admin listing handler.
package notificationservice
