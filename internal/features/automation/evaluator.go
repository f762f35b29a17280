package automation

import (
	"fmt"
	"strings"
	"time"

	"nexus-crm/internal/features/lead"
)

// EvaluateConditions reports whether every condition matches the given
// field map. An empty condition list matches everything.
func EvaluateConditions(conditions []Condition, fields map[string]any) (bool, error) {
	for _, cond := range conditions {
		matched, err := evaluateCondition(cond, fields)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func evaluateCondition(cond Condition, fields map[string]any) (bool, error) {
	actual, ok := fields[cond.Field]
	if !ok {
		return false, nil
	}

	switch cond.Operator {
	case OperatorEqual:
		return equalValues(actual, cond.Value), nil
	case OperatorNotEqual:
		return !equalValues(actual, cond.Value), nil
	case OperatorGreater:
		a, b, err := numericPair(actual, cond.Value)
		if err != nil {
			return false, err
		}
		return a > b, nil
	case OperatorLess:
		a, b, err := numericPair(actual, cond.Value)
		if err != nil {
			return false, err
		}
		return a < b, nil
	case OperatorContains:
		aStr, aOK := actual.(string)
		bStr, bOK := cond.Value.(string)
		if !aOK || !bOK {
			return false, fmt.Errorf("contains operator requires string values for field %s", cond.Field)
		}
		return strings.Contains(strings.ToLower(aStr), strings.ToLower(bStr)), nil
	default:
		return false, fmt.Errorf("unknown operator: %s", cond.Operator)
	}
}

func equalValues(a, b any) bool {
	if af, aOK := toFloat(a); aOK {
		if bf, bOK := toFloat(b); bOK {
			return af == bf
		}
	}
	if aStr, ok := a.(string); ok {
		if bStr, ok := b.(string); ok {
			return aStr == bStr
		}
	}
	return a == b
}

func numericPair(a, b any) (float64, float64, error) {
	af, aOK := toFloat(a)
	bf, bOK := toFloat(b)
	if !aOK || !bOK {
		return 0, 0, fmt.Errorf("numeric comparison on non-numeric values (%v, %v)", a, b)
	}
	return af, bf, nil
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// LeadFields flattens a lead into the field map the evaluator and the rule
// builder's test panel operate on. daysInStage is derived from the lead's
// stage-entry timestamp.
func LeadFields(l *lead.Lead, now time.Time) map[string]any {
	fields := map[string]any{
		"firstName":      l.FirstName,
		"lastName":       l.LastName,
		"email":          l.Email,
		"phone":          l.Phone,
		"company":        l.Company,
		"position":       l.Position,
		"source":         l.Source,
		"status":         string(l.Status),
		"score":          l.Score,
		"potentialValue": l.PotentialValue,
		"daysInStage":    now.Sub(l.StageEnteredAt).Hours() / 24,
	}
	for k, v := range l.CustomFields {
		fields[k] = v
	}
	return fields
}
