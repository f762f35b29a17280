package automation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"

	"github.com/d5/tengo/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ActionExecutor runs a rule's actions against a lead
type ActionExecutor interface {
	ExecuteActions(ctx context.Context, actions []Action, l *lead.Lead) error
	ExecuteAction(ctx context.Context, action Action, l *lead.Lead) error
}

type ActionExecutorImpl struct {
	leadRepo            lead.LeadRepository
	notificationService notification.NotificationService
	logger              *zap.Logger
}

func NewActionExecutor(
	leadRepo lead.LeadRepository,
	notificationService notification.NotificationService,
	logger *zap.Logger,
) ActionExecutor {
	return &ActionExecutorImpl{
		leadRepo:            leadRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// ExecuteActions runs every action; a failing action is logged and skipped
// so the rest of the list still runs.
func (e *ActionExecutorImpl) ExecuteActions(ctx context.Context, actions []Action, l *lead.Lead) error {
	for i, action := range actions {
		if err := e.ExecuteAction(ctx, action, l); err != nil {
			e.logger.Warn("failed to execute action",
				zap.Int("index", i),
				zap.String("type", string(action.Type)),
				zap.Error(err))
		}
	}
	return nil
}

func (e *ActionExecutorImpl) ExecuteAction(ctx context.Context, action Action, l *lead.Lead) error {
	switch action.Type {
	case ActionAssignOwner:
		return e.executeAssignOwner(ctx, action.Config, l)
	case ActionSendNotification:
		return e.executeSendNotification(ctx, action.Config, l)
	case ActionUpdateField:
		return e.executeUpdateField(ctx, action.Config, l)
	case ActionRunScript:
		return e.executeRunScript(ctx, action.Config, l)
	default:
		return fmt.Errorf("unsupported action type: %s", action.Type)
	}
}

func (e *ActionExecutorImpl) executeAssignOwner(ctx context.Context, config map[string]any, l *lead.Lead) error {
	ownerHex, _ := config["owner_id"].(string)
	ownerID, err := primitive.ObjectIDFromHex(ownerHex)
	if err != nil {
		return fmt.Errorf("invalid owner_id in action config: %w", err)
	}

	return e.leadRepo.Mutate(ctx, l.ID.Hex(), func(current *lead.Lead) error {
		current.OwnerID = ownerID
		return nil
	})
}

func (e *ActionExecutorImpl) executeSendNotification(ctx context.Context, config map[string]any, l *lead.Lead) error {
	title, _ := config["title"].(string)
	message, _ := config["message"].(string)
	if title == "" {
		return fmt.Errorf("notification title is required")
	}

	message = replacePlaceholders(message, l)
	return e.notificationService.CreateNotification(ctx, title, message, notification.NotificationTypeAlert)
}

func (e *ActionExecutorImpl) executeUpdateField(ctx context.Context, config map[string]any, l *lead.Lead) error {
	field, _ := config["field"].(string)
	if field == "" {
		return fmt.Errorf("field name is required")
	}
	value := config["value"]

	return e.leadRepo.Mutate(ctx, l.ID.Hex(), func(current *lead.Lead) error {
		switch field {
		case "source":
			current.Source, _ = value.(string)
		case "score":
			if f, ok := toFloat(value); ok {
				current.Score = int(f)
			}
		case "potentialValue":
			if f, ok := toFloat(value); ok {
				current.PotentialValue = f
			}
		default:
			if current.CustomFields == nil {
				current.CustomFields = make(map[string]any)
			}
			current.CustomFields[field] = value
		}
		return nil
	})
}

func (e *ActionExecutorImpl) executeRunScript(_ context.Context, config map[string]any, l *lead.Lead) error {
	scriptContent, _ := config["script"].(string)
	if scriptContent == "" {
		return fmt.Errorf("script content is required")
	}

	script := tengo.NewScript([]byte(scriptContent))
	script.Add("lead", toScriptMap(LeadFields(l, time.Now())))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("failed to run script: %w", err)
	}

	e.logger.Info("executed rule script", zap.String("lead_id", l.ID.Hex()))
	return nil
}

// toScriptMap narrows field values to types tengo can hold.
func toScriptMap(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch val := v.(type) {
		case string, int, int64, float64, bool:
			out[k] = val
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

func replacePlaceholders(message string, l *lead.Lead) string {
	return strings.NewReplacer(
		"{{name}}", l.FullName(),
		"{{company}}", l.Company,
		"{{email}}", l.Email,
		"{{status}}", string(l.Status),
	).Replace(message)
}
