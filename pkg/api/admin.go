package api

import (
	"context"
	"fmt"

	"github.com/me/evento/pkg/model"
)

// Admin endpoints. All of these require an admin token; the backend
// answers 403 otherwise.

// PendingEvents returns events awaiting moderation.
func (c *Client) PendingEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.getJSON(ctx, "/admin/events?status=pending", &events); err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	return events, nil
}

// ApproveEvent publishes a pending event.
func (c *Client) ApproveEvent(ctx context.Context, eventID int) error {
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/admin/events/%d/approve", eventID), nil, nil); err != nil {
		return fmt.Errorf("approve event %d: %w", eventID, err)
	}
	return nil
}

// RejectEvent declines a pending event with a reason.
func (c *Client) RejectEvent(ctx context.Context, eventID int, reason string) error {
	body := map[string]string{"reason": reason}
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/admin/events/%d/reject", eventID), body, nil); err != nil {
		return fmt.Errorf("reject event %d: %w", eventID, err)
	}
	return nil
}

// AdminDeleteEvent removes any event regardless of owner.
func (c *Client) AdminDeleteEvent(ctx context.Context, eventID int) error {
	if err := c.doJSON(ctx, "DELETE", fmt.Sprintf("/admin/events/%d", eventID), nil, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", eventID, err)
	}
	return nil
}

// ListUsers returns all platform accounts.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.getJSON(ctx, "/admin/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetUserRole changes an account's role.
func (c *Client) SetUserRole(ctx context.Context, userID int, role model.Role) (*model.User, error) {
	body := map[string]string{"role": string(role)}
	var u model.User
	if err := c.doJSON(ctx, "PUT", fmt.Sprintf("/admin/users/%d/role", userID), body, &u); err != nil {
		return nil, fmt.Errorf("set role for user %d: %w", userID, err)
	}
	return &u, nil
}
