package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"nexus-crm/internal/features/automation"
	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"
	"nexus-crm/internal/features/task"
	"nexus-crm/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	firstNames = []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	companies  = []string{"Acme Corp", "Globex", "Soylent Corp", "Initech", "Umbrella Corp", "Stark Ind", "Wayne Ent", "Cyberdyne"}
	sources    = []string{"Website", "Referral", "LinkedIn", "Cold Call", "Conference", "Ads"}
	positions  = []string{"CEO", "CTO", "VP Sales", "Director", "Manager", "Developer"}
)

// Generator produces the randomized mock dataset the stores are seeded
// with at startup.
type Generator struct {
	rnd     *rand.Rand
	catalog *pipeline.Catalog
}

func NewGenerator(rnd *rand.Rand, catalog *pipeline.Catalog) *Generator {
	return &Generator{rnd: rnd, catalog: catalog}
}

func (g *Generator) pick(items []string) string {
	return items[g.rnd.Intn(len(items))]
}

// DefaultUsers returns the fixed team roster.
func DefaultUsers() []user.User {
	names := []struct {
		name  string
		role  user.Role
		email string
	}{
		{"Alice Johnson", user.RoleAdmin, "alice@nexus.com"},
		{"Bob Smith", user.RoleSalesRep, "bob@nexus.com"},
		{"Charlie Davis", user.RoleSalesRep, "charlie@nexus.com"},
		{"Diana Prince", user.RoleManager, "diana@nexus.com"},
	}

	users := make([]user.User, 0, len(names))
	for _, n := range names {
		users = append(users, user.User{
			ID:     primitive.NewObjectID(),
			Name:   n.name,
			Role:   n.role,
			Email:  n.email,
			Avatar: fmt.Sprintf("https://ui-avatars.com/api/?name=%s", strings.ReplaceAll(n.name, " ", "+")),
		})
	}
	return users
}

// GenerateLeads produces count randomized leads owned by the given users.
// Stage-entry times land within the last three days so the first SLA sweeps
// see a mix of ok, warning and breached leads instead of a wall of alerts.
func (g *Generator) GenerateLeads(count int, users []user.User) []lead.Lead {
	stages := g.catalog.Stages()
	leads := make([]lead.Lead, 0, count)

	for i := 0; i < count; i++ {
		firstName := g.pick(firstNames)
		lastName := g.pick(lastNames)
		stage := stages[g.rnd.Intn(len(stages))].ID
		isHot := g.rnd.Float64() > 0.8

		createdAt := time.Now().Add(-time.Duration(g.rnd.Intn(90*24)) * time.Hour)
		stageEnteredAt := time.Now().Add(-time.Duration(g.rnd.Intn(72)) * time.Hour)
		if stageEnteredAt.Before(createdAt) {
			stageEnteredAt = createdAt
		}

		tags := []string{"Warm"}
		if isHot {
			tags = []string{"Hot", "Tech"}
		}

		leads = append(leads, lead.Lead{
			ID:             primitive.NewObjectID(),
			FirstName:      firstName,
			LastName:       lastName,
			Email:          fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(firstName), strings.ToLower(lastName), i+1),
			Phone:          fmt.Sprintf("(555) %03d-%04d", 100+g.rnd.Intn(900), 1000+g.rnd.Intn(9000)),
			Company:        g.pick(companies),
			Position:       g.pick(positions),
			Source:         g.pick(sources),
			Status:         stage,
			Score:          g.rnd.Intn(100),
			OwnerID:        users[g.rnd.Intn(len(users))].ID,
			CreatedAt:      createdAt,
			StageEnteredAt: stageEnteredAt,
			PotentialValue: float64(1000 + g.rnd.Intn(50000)),
			Tags:           tags,
			Notes:          []lead.Note{},
			Activities: []lead.Activity{
				{
					ID:          primitive.NewObjectID(),
					Type:        lead.ActivityTypeStageChange,
					Description: fmt.Sprintf("Moved to %s", stage),
					Timestamp:   stageEnteredAt,
					PerformedBy: "System",
				},
			},
			CustomFields: map[string]any{},
			Address: &lead.Address{
				Street:  "123 Business Rd",
				City:    "Tech City",
				State:   "CA",
				Zip:     "94000",
				Country: "USA",
			},
			IsFollowed: g.rnd.Float64() > 0.8,
			SLAStatus:  lead.SLAStatusOK,
		})
	}
	return leads
}

// GenerateTasks produces follow-up tasks for the first ten leads.
func (g *Generator) GenerateTasks(leads []lead.Lead) []task.Task {
	n := len(leads)
	if n > 10 {
		n = 10
	}

	tasks := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		l := leads[i]
		title := fmt.Sprintf("Follow up with %s", l.FirstName)
		if i%2 != 0 {
			title = fmt.Sprintf("Send proposal to %s", l.Company)
		}

		priority := task.PriorityMedium
		if g.rnd.Float64() > 0.5 {
			priority = task.PriorityHigh
		}
		status := task.StatusPending
		if g.rnd.Float64() > 0.7 {
			status = task.StatusCompleted
		}

		tasks = append(tasks, task.Task{
			ID:         primitive.NewObjectID(),
			Title:      title,
			DueDate:    time.Now().Add(time.Duration(g.rnd.Intn(7*24)) * time.Hour),
			Priority:   priority,
			Status:     status,
			LeadID:     l.ID,
			AssignedTo: l.OwnerID,
		})
	}
	return tasks
}

// GenerateNotifications returns the canned starter feed.
func (g *Generator) GenerateNotifications() []notification.Notification {
	now := time.Now()
	return []notification.Notification{
		{
			ID:        primitive.NewObjectID(),
			Title:     "Lead Assignment",
			Message:   `New lead "Acme Corp" has been assigned to you.`,
			Type:      notification.NotificationTypeSystem,
			CreatedAt: now,
		},
		{
			ID:        primitive.NewObjectID(),
			Title:     "Mentioned in Note",
			Message:   `Alice mentioned you in a note on "Globex Deal"`,
			Type:      notification.NotificationTypeMention,
			IsRead:    true,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:        primitive.NewObjectID(),
			Title:     "High Value Alert",
			Message:   "Stark Ind deal value increased to $50,000",
			Type:      notification.NotificationTypeAlert,
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}
}

// DefaultRules returns the stock automation rules the rule builder shows.
func DefaultRules() []automation.Rule {
	now := time.Now()
	return []automation.Rule{
		{
			ID:           primitive.NewObjectID(),
			Name:         "High Value Lead Assignment",
			Description:  "Assign leads with value > 10k to Senior Reps",
			Active:       true,
			Version:      1,
			LastModified: now,
			Conditions: []automation.Condition{
				{Field: "potentialValue", Operator: automation.OperatorGreater, Value: 10000},
			},
			Actions: []automation.Action{
				{Type: automation.ActionSendNotification, Config: map[string]any{
					"title":   "High Value Alert",
					"message": "{{company}} deal for {{name}} flagged above $10,000.",
				}},
			},
		},
		{
			ID:           primitive.NewObjectID(),
			Name:         "Stale Lead Alert",
			Description:  `Notify manager if lead is in "New" for > 3 days`,
			Active:       false,
			Version:      2,
			LastModified: now.Add(-24 * time.Hour),
			Conditions: []automation.Condition{
				{Field: "status", Operator: automation.OperatorEqual, Value: "New"},
				{Field: "daysInStage", Operator: automation.OperatorGreater, Value: 3},
			},
			Actions: []automation.Action{
				{Type: automation.ActionSendNotification, Config: map[string]any{
					"title":   "Stale Lead Alert",
					"message": "{{name}} has been sitting in New for over 3 days.",
				}},
			},
		},
	}
}
