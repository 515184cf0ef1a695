package model

import "time"

// PastorMessage is a broadcast record shown on the congregation home page.
// Across the whole collection at most one message has IsActive set.
type PastorMessage struct {
	ID        int64
	Title     string
	Body      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PastorMessagePatch lists the mutable message fields. Nil fields are left untouched.
type PastorMessagePatch struct {
	Title    *string
	Body     *string
	IsActive *bool
}

// Apply copies every non-nil patch field onto m.
func (p PastorMessagePatch) Apply(m *PastorMessage) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Body != nil {
		m.Body = *p.Body
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
}
