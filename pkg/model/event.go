package model

import "time"

// EventStatus represents the moderation state of an event.
type EventStatus string

const (
	// EventPending awaits admin moderation and is not publicly listed.
	EventPending EventStatus = "pending"
	// EventApproved has passed moderation and is publicly listed.
	EventApproved EventStatus = "approved"
	// EventRejected was declined by an admin.
	EventRejected EventStatus = "rejected"
)

// IsPublic returns true if the event is visible to visitors.
func (s EventStatus) IsPublic() bool {
	return s == EventApproved
}

// Event represents an event on the platform.
type Event struct {
	ID              int          `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	Location        string       `json:"location"`
	MaxParticipants int          `json:"max_participants"`
	Status          EventStatus  `json:"status"`
	EventType       string       `json:"event_type,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	Organizer       *User        `json:"organizer,omitempty"`
	Images          []EventImage `json:"images,omitempty"`
}

// EventImage is an image attached to an event.
type EventImage struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Participation records a user's registration for an event.
type Participation struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// EventCreate is the payload for creating or updating an event.
type EventCreate struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants"`
	EventType       string    `json:"event_type,omitempty"`
}
