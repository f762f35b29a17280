package automation

import (
	"context"
	"errors"
	"sync"
)

var ErrRuleNotFound = errors.New("rule not found")

// RuleRepository defines access to the rule collection
type RuleRepository interface {
	Insert(ctx context.Context, r *Rule) error
	FindByID(ctx context.Context, id string) (*Rule, error)
	FindAll(ctx context.Context) ([]Rule, error)
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRuleRepository keeps rules behind a single mutex
type InMemoryRuleRepository struct {
	mu    sync.RWMutex
	rules []Rule
}

func NewRuleRepository() RuleRepository {
	return &InMemoryRuleRepository{}
}

func (r *InMemoryRuleRepository) Insert(ctx context.Context, rule *Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, *rule)
	return nil
}

func (r *InMemoryRuleRepository) FindByID(ctx context.Context, id string) (*Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rules {
		if r.rules[i].ID.Hex() == id {
			rule := r.rules[i]
			return &rule, nil
		}
	}
	return nil, ErrRuleNotFound
}

func (r *InMemoryRuleRepository) FindAll(ctx context.Context) ([]Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out, nil
}

func (r *InMemoryRuleRepository) Update(ctx context.Context, rule *Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rules {
		if r.rules[i].ID == rule.ID {
			r.rules[i] = *rule
			return nil
		}
	}
	return ErrRuleNotFound
}

func (r *InMemoryRuleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rules {
		if r.rules[i].ID.Hex() == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return ErrRuleNotFound
}
