// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// HomeViewModel holds everything the public home page renders.
type HomeViewModel struct {
	SiteName string
	Message  *MessageViewModel // nil when no message is active
}

// MessageViewModel is the active pastor message prepared for display.
type MessageViewModel struct {
	Title     string
	BodyHTML  string // sanitized HTML rendered from markdown
	UpdatedAt string // human-readable date
	DateTime  string // RFC 3339, for the <time> element
}
