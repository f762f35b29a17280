package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeSystem  NotificationType = "system"
	NotificationTypeMention NotificationType = "mention"
	NotificationTypeAlert   NotificationType = "alert"
)

type Notification struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      NotificationType   `json:"type"`
	IsRead    bool               `json:"is_read"`
	CreatedAt time.Time          `json:"created_at"`
	ReadAt    *time.Time         `json:"read_at,omitempty"`
}
