package notification

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines access to the notification feed
type NotificationRepository interface {
	Insert(ctx context.Context, n *Notification) error
	FindAll(ctx context.Context) ([]Notification, error)
	CountUnread(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
}

// InMemoryNotificationRepository keeps the feed newest-first behind a
// single mutex. Entries are append-only; only the read flag ever changes.
type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []Notification
}

func NewNotificationRepository() NotificationRepository {
	return &InMemoryNotificationRepository{}
}

func (r *InMemoryNotificationRepository) Insert(ctx context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append([]Notification{*n}, r.notifications...)
	return nil
}

func (r *InMemoryNotificationRepository) FindAll(ctx context.Context) ([]Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out, nil
}

func (r *InMemoryNotificationRepository) CountUnread(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.notifications {
		if !r.notifications[i].IsRead {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID.Hex() == id {
			if !r.notifications[i].IsRead {
				now := time.Now()
				r.notifications[i].IsRead = true
				r.notifications[i].ReadAt = &now
			}
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *InMemoryNotificationRepository) MarkAllAsRead(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range r.notifications {
		if !r.notifications[i].IsRead {
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}
