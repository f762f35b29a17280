package pipeline

import "time"

// StageID identifies one of the pipeline stages a lead can be in.
type StageID string

const (
	StageNew         StageID = "New"
	StageContacted   StageID = "Contacted"
	StageQualified   StageID = "Qualified"
	StageProposal    StageID = "Proposal"
	StageNegotiation StageID = "Negotiation"
	StageClosedWon   StageID = "Closed Won"
	StageClosedLost  StageID = "Closed Lost"
)

// PipelineStage is static stage configuration. ExitCriteria lists the lead
// fields that must be populated before a lead may leave this stage.
type PipelineStage struct {
	ID           StageID  `json:"id"`
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Order        int      `json:"order"`
	ExitCriteria []string `json:"exit_criteria,omitempty"`
}

// SLAPolicy caps how long a lead may sit in a stage before breaching.
// Stages without a policy are unmonitored.
type SLAPolicy struct {
	Stage          StageID       `json:"stage"`
	MaxTimeInStage time.Duration `json:"max_time_in_stage"`
}
