package api

import (
	"context"
	"fmt"
	"time"
)

// Notification is one inbox entry for the current user.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Type      string    `json:"type,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListNotifications returns a page of the current user's notifications.
func (c *Client) ListNotifications(ctx context.Context, opts ListOptions) (*Page[Notification], error) {
	var page Page[Notification]
	if err := c.get(ctx, "/v1/notifications/", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/v1/notifications/unread_count/", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	body := struct {
		IsRead bool `json:"is_read"`
	}{IsRead: true}
	return c.patch(ctx, fmt.Sprintf("/v1/notifications/%d/", id), body, nil)
}

// MarkAllNotificationsRead flags the whole inbox as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/v1/notifications/mark_all_read/", nil, nil)
}

// BatchMarkNotificationsRead flags the given notifications as read.
func (c *Client) BatchMarkNotificationsRead(ctx context.Context, ids []int64) error {
	body := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	return c.post(ctx, "/v1/notifications/batch_mark_read/", body, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/v1/notifications/%d/", id))
}

// BatchDeleteNotifications removes the given notifications.
func (c *Client) BatchDeleteNotifications(ctx context.Context, ids []int64) error {
	body := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	return c.post(ctx, "/v1/notifications/batch_delete/", body, nil)
}
