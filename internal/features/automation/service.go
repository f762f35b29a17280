package automation

import (
	"context"
	"time"

	"nexus-crm/internal/features/lead"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AutomationService is the backend the visual rule builder talks to
type AutomationService interface {
	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpdateRule(ctx context.Context, rule *Rule) error
	ToggleRule(ctx context.Context, id string) error
	DeleteRule(ctx context.Context, id string) error
	// TestRule backs the builder's test panel: sample values in, verdict out.
	TestRule(rule *Rule, sample map[string]any) (bool, error)
	ApplyRules(ctx context.Context, l *lead.Lead) error
}

// AutomationServiceImpl implements AutomationService
type AutomationServiceImpl struct {
	RuleRepo RuleRepository
	Executor ActionExecutor
	Logger   *zap.Logger
}

// NewAutomationService creates a new automation service
func NewAutomationService(ruleRepo RuleRepository, executor ActionExecutor, logger *zap.Logger) AutomationService {
	return &AutomationServiceImpl{
		RuleRepo: ruleRepo,
		Executor: executor,
		Logger:   logger,
	}
}

// CreateRule stores a new rule at version 1
func (s *AutomationServiceImpl) CreateRule(ctx context.Context, rule *Rule) error {
	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}
	rule.Version = 1
	rule.LastModified = time.Now()
	return s.RuleRepo.Insert(ctx, rule)
}

// GetRule retrieves a rule by ID
func (s *AutomationServiceImpl) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.RuleRepo.FindByID(ctx, id)
}

// ListRules retrieves all rules
func (s *AutomationServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return s.RuleRepo.FindAll(ctx)
}

// UpdateRule saves an edited rule, bumping its version
func (s *AutomationServiceImpl) UpdateRule(ctx context.Context, rule *Rule) error {
	current, err := s.RuleRepo.FindByID(ctx, rule.ID.Hex())
	if err != nil {
		return err
	}
	rule.Version = current.Version + 1
	rule.LastModified = time.Now()
	return s.RuleRepo.Update(ctx, rule)
}

// ToggleRule flips a rule's active flag
func (s *AutomationServiceImpl) ToggleRule(ctx context.Context, id string) error {
	rule, err := s.RuleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	rule.Active = !rule.Active
	rule.LastModified = time.Now()
	return s.RuleRepo.Update(ctx, rule)
}

// DeleteRule removes a rule
func (s *AutomationServiceImpl) DeleteRule(ctx context.Context, id string) error {
	return s.RuleRepo.Delete(ctx, id)
}

// TestRule evaluates a rule against sample field values without executing
// any actions
func (s *AutomationServiceImpl) TestRule(rule *Rule, sample map[string]any) (bool, error) {
	return EvaluateConditions(rule.Conditions, sample)
}

// ApplyRules runs every active rule against the lead, executing the actions
// of those that match
func (s *AutomationServiceImpl) ApplyRules(ctx context.Context, l *lead.Lead) error {
	rules, err := s.RuleRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	fields := LeadFields(l, time.Now())
	for i := range rules {
		if !rules[i].Active {
			continue
		}
		matched, err := EvaluateConditions(rules[i].Conditions, fields)
		if err != nil {
			s.Logger.Warn("rule evaluation failed",
				zap.String("rule", rules[i].Name),
				zap.Error(err))
			continue
		}
		if !matched {
			continue
		}

		s.Logger.Info("rule matched",
			zap.String("rule", rules[i].Name),
			zap.String("lead_id", l.ID.Hex()))
		if err := s.Executor.ExecuteActions(ctx, rules[i].Actions, l); err != nil {
			return err
		}
	}
	return nil
}
