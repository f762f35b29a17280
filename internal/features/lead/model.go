package lead

import (
	"time"

	"nexus-crm/internal/features/pipeline"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SLAStatus is the lead's current state in the SLA state machine.
type SLAStatus string

const (
	SLAStatusOK       SLAStatus = "ok"
	SLAStatusWarning  SLAStatus = "warning"
	SLAStatusBreached SLAStatus = "breached"
)

type ActivityType string

const (
	ActivityTypeCall        ActivityType = "call"
	ActivityTypeEmail       ActivityType = "email"
	ActivityTypeMeeting     ActivityType = "meeting"
	ActivityTypeNote        ActivityType = "note"
	ActivityTypeTask        ActivityType = "task"
	ActivityTypeStageChange ActivityType = "stage_change"
	ActivityTypeMerge       ActivityType = "merge"
	ActivityTypeAlert       ActivityType = "alert"
)

// Activity is an immutable timeline entry on a lead. Activities are only
// ever prepended; the list stays newest-first.
type Activity struct {
	ID          primitive.ObjectID `json:"id"`
	Type        ActivityType       `json:"type"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
	PerformedBy string             `json:"performed_by"`
	Details     string             `json:"details,omitempty"`
}

type Note struct {
	ID        primitive.ObjectID `json:"id"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"created_at"`
	AuthorID  primitive.ObjectID `json:"author_id"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Lead is a sales prospect record.
//
// StageEnteredAt tracks the moment the lead entered its current stage and
// is reset on every successful transition; the SLA monitor measures
// time-in-stage from it rather than from CreatedAt.
type Lead struct {
	ID             primitive.ObjectID `json:"id"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Company        string             `json:"company"`
	Position       string             `json:"position"`
	Source         string             `json:"source"`
	Status         pipeline.StageID   `json:"status"`
	Score          int                `json:"score"`
	OwnerID        primitive.ObjectID `json:"owner_id"`
	CreatedAt      time.Time          `json:"created_at"`
	StageEnteredAt time.Time          `json:"stage_entered_at"`
	LastContacted  *time.Time         `json:"last_contacted,omitempty"`
	PotentialValue float64            `json:"potential_value"`
	Tags           []string           `json:"tags"`
	Notes          []Note             `json:"notes"`
	Activities     []Activity         `json:"activities"`
	CustomFields   map[string]any     `json:"custom_fields"`
	Address        *Address           `json:"address,omitempty"`
	IsFollowed     bool               `json:"is_followed"`
	SLAStatus      SLAStatus          `json:"sla_status"`
}

// FullName returns the lead's display name.
func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}
