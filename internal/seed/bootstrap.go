package seed

import (
	"context"

	"nexus-crm/internal/features/automation"
	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/task"
	"nexus-crm/internal/features/user"

	"go.uber.org/zap"
)

// Stores groups the handles Populate seeds through.
type Stores struct {
	Leads         lead.LeadService
	Tasks         task.TaskService
	Automation    automation.AutomationService
	Notifications notification.NotificationRepository
	Rules         automation.RuleRepository
}

// Populate fills the stores with one generated dataset, then gives the
// automation rules a pass over the leads that actually made it into the
// store. Rule application failures are logged per lead, not fatal.
func (g *Generator) Populate(ctx context.Context, count int, users []user.User, stores Stores, log *zap.Logger) error {
	// Canned feed entries carry read flags, so they go through the
	// repository rather than the service.
	for _, n := range g.GenerateNotifications() {
		if err := stores.Notifications.Insert(ctx, &n); err != nil {
			return err
		}
	}
	for _, r := range DefaultRules() {
		if err := stores.Rules.Insert(ctx, &r); err != nil {
			return err
		}
	}

	batch := g.GenerateLeads(count, users)
	if err := stores.Leads.ImportLeads(ctx, batch); err != nil {
		return err
	}

	// Import may have dropped duplicates; evaluate what is stored, not
	// what was generated.
	leads, err := stores.Leads.ListLeads(ctx)
	if err != nil {
		return err
	}
	for i := range leads {
		if err := stores.Automation.ApplyRules(ctx, &leads[i]); err != nil {
			log.Warn("rule application failed",
				zap.String("lead_id", leads[i].ID.Hex()),
				zap.Error(err))
		}
	}

	for _, t := range g.GenerateTasks(leads) {
		if err := stores.Tasks.AddTask(ctx, &t); err != nil {
			return err
		}
	}

	log.Info("stores seeded",
		zap.Int("leads", len(leads)),
		zap.Int("users", len(users)))
	return nil
}
