// Package outreachservice implements influencer outreach for the Musubime app.
//
// The module owns the selected-candidate and template sheets and exposes HTTP handlers
// for candidate listing, template management, preview rendering and bulk email sends.
package outreachservice
