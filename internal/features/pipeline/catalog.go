package pipeline

import "time"

// Catalog holds the pipeline configuration. It is read-only at runtime and
// shared by reference between the store, the stage-gate validator and the
// SLA monitor.
type Catalog struct {
	stages   []PipelineStage
	byID     map[StageID]PipelineStage
	policies map[StageID]SLAPolicy
}

// NewCatalog builds a catalog from explicit configuration. Stage order
// follows the slice order.
func NewCatalog(stages []PipelineStage, policies []SLAPolicy) *Catalog {
	c := &Catalog{
		stages:   stages,
		byID:     make(map[StageID]PipelineStage, len(stages)),
		policies: make(map[StageID]SLAPolicy, len(policies)),
	}
	for _, s := range stages {
		c.byID[s.ID] = s
	}
	for _, p := range policies {
		c.policies[p.Stage] = p
	}
	return c
}

// DefaultCatalog returns the stock seven-stage pipeline with the exit
// criteria and SLA thresholds the prototype ships with.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]PipelineStage{
			{ID: StageNew, Name: "New Lead", Color: "#3b82f6", Order: 1, ExitCriteria: []string{"email", "phone", "company", "potentialValue"}},
			{ID: StageContacted, Name: "Contacted", Color: "#6366f1", Order: 2},
			{ID: StageQualified, Name: "Qualified", Color: "#a855f7", Order: 3},
			{ID: StageProposal, Name: "Proposal", Color: "#f59e0b", Order: 4},
			{ID: StageNegotiation, Name: "Negotiation", Color: "#f97316", Order: 5},
			{ID: StageClosedWon, Name: "Closed Won", Color: "#10b981", Order: 6},
			{ID: StageClosedLost, Name: "Closed Lost", Color: "#ef4444", Order: 7},
		},
		[]SLAPolicy{
			{Stage: StageNew, MaxTimeInStage: 24 * time.Hour},
			{Stage: StageContacted, MaxTimeInStage: 48 * time.Hour},
			{Stage: StageQualified, MaxTimeInStage: 72 * time.Hour},
			{Stage: StageProposal, MaxTimeInStage: 96 * time.Hour},
			{Stage: StageNegotiation, MaxTimeInStage: 120 * time.Hour},
		},
	)
}

// Stages returns all stages in pipeline order.
func (c *Catalog) Stages() []PipelineStage {
	out := make([]PipelineStage, len(c.stages))
	copy(out, c.stages)
	return out
}

// StageByID looks up a stage definition.
func (c *Catalog) StageByID(id StageID) (PipelineStage, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// IsValidStage reports whether id names a configured stage.
func (c *Catalog) IsValidStage(id StageID) bool {
	_, ok := c.byID[id]
	return ok
}

// ExitCriteria returns the fields required to leave the given stage.
func (c *Catalog) ExitCriteria(id StageID) []string {
	return c.byID[id].ExitCriteria
}

// PolicyFor returns the SLA policy for a stage, if one is configured.
func (c *Catalog) PolicyFor(id StageID) (SLAPolicy, bool) {
	p, ok := c.policies[id]
	return p, ok
}
