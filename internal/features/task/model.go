package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

type Task struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	DueDate     time.Time          `json:"due_date"`
	Priority    TaskPriority       `json:"priority"`
	Status      TaskStatus         `json:"status"`
	LeadID      primitive.ObjectID `json:"lead_id,omitempty"`
	AssignedTo  primitive.ObjectID `json:"assigned_to"`
	Description string             `json:"description,omitempty"`
}
