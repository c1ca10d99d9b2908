// Package authservice implements dashboard login against the campaign sheet.
//
// Roles are derived at login from the configured admin ids and email domain.
package authservice
