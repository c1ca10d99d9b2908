// Package campaignservice implements the campaign workflow for the Musubime app.
//
// The module reads campaign rows from the row store and exposes HTTP handlers for
// status updates, submissions, admin review actions, messages, reminders and the
// onboarding survey, plus the reminder sweep worker.
package campaignservice
