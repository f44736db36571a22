package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/me/evento/pkg/model"
)

// EventFilter narrows an event listing.
type EventFilter struct {
	Status    model.EventStatus
	EventType string
}

func (f EventFilter) query() string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.EventType != "" {
		q.Set("event_type", f.EventType)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListEvents returns the public event listing, optionally filtered.
func (c *Client) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	var events []model.Event
	if err := c.getJSON(ctx, "/events"+filter.query(), &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns a single event by id.
func (c *Client) GetEvent(ctx context.Context, id int) (*model.Event, error) {
	var ev model.Event
	if err := c.getJSON(ctx, fmt.Sprintf("/events/%d", id), &ev); err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &ev, nil
}

// MyEvents returns events the authenticated user organizes or joined.
func (c *Client) MyEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.getJSON(ctx, "/events/my", &events); err != nil {
		return nil, fmt.Errorf("list my events: %w", err)
	}
	return events, nil
}

// CreateEvent submits a new event. It enters moderation as pending.
func (c *Client) CreateEvent(ctx context.Context, req model.EventCreate) (*model.Event, error) {
	var ev model.Event
	if err := c.doJSON(ctx, "POST", "/events", &req, &ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &ev, nil
}

// UpdateEvent replaces an event's details.
func (c *Client) UpdateEvent(ctx context.Context, id int, req model.EventCreate) (*model.Event, error) {
	var ev model.Event
	if err := c.doJSON(ctx, "PUT", fmt.Sprintf("/events/%d", id), &req, &ev); err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	return &ev, nil
}

// DeleteEvent removes an event the caller organizes.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, "DELETE", fmt.Sprintf("/events/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

// Participate registers the authenticated user for an event.
func (c *Client) Participate(ctx context.Context, eventID int) (*model.Participation, error) {
	var p model.Participation
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/events/%d/participate", eventID), nil, &p); err != nil {
		return nil, fmt.Errorf("join event %d: %w", eventID, err)
	}
	return &p, nil
}

// CancelParticipation withdraws the authenticated user from an event.
func (c *Client) CancelParticipation(ctx context.Context, eventID int) error {
	if err := c.doJSON(ctx, "DELETE", fmt.Sprintf("/events/%d/participate", eventID), nil, nil); err != nil {
		return fmt.Errorf("leave event %d: %w", eventID, err)
	}
	return nil
}
