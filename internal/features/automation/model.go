package automation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConditionOperator string

const (
	OperatorEqual    ConditionOperator = "equal"
	OperatorNotEqual ConditionOperator = "not_equal"
	OperatorGreater  ConditionOperator = "greater"
	OperatorLess     ConditionOperator = "less"
	OperatorContains ConditionOperator = "contains"
)

type ActionType string

const (
	ActionAssignOwner      ActionType = "assign_owner"
	ActionSendNotification ActionType = "send_notification"
	ActionUpdateField      ActionType = "update_field"
	ActionRunScript        ActionType = "run_script"
)

type Condition struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value"`
}

type Action struct {
	Type   ActionType     `json:"type"`
	Config map[string]any `json:"config"`
}

// Rule is what the visual rule builder edits: a named, versioned condition
// group (AND semantics) with a list of actions.
type Rule struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Active       bool               `json:"active"`
	Version      int                `json:"version"`
	LastModified time.Time          `json:"last_modified"`
	Conditions   []Condition        `json:"conditions"`
	Actions      []Action           `json:"actions"`
}
