package lead

import (
	"strings"
)

// TransitionResult reports the outcome of a stage-gate check. When Success
// is false, MissingFields lists every unmet exit criterion of the current
// stage, in the order the criteria are declared.
type TransitionResult struct {
	Success       bool     `json:"success"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// missingExitFields returns the exit criteria the lead does not satisfy.
// A field counts as missing when it is absent, an empty string, or a zero
// number. That last rule means a legitimate $0 potentialValue cannot pass
// a gate that requires the field.
func missingExitFields(criteria []string, l *Lead) []string {
	var missing []string
	for _, field := range criteria {
		if !fieldPresent(l, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func fieldPresent(l *Lead, field string) bool {
	switch field {
	case "firstName":
		return strings.TrimSpace(l.FirstName) != ""
	case "lastName":
		return strings.TrimSpace(l.LastName) != ""
	case "email":
		return strings.TrimSpace(l.Email) != ""
	case "phone":
		return strings.TrimSpace(l.Phone) != ""
	case "company":
		return strings.TrimSpace(l.Company) != ""
	case "position":
		return strings.TrimSpace(l.Position) != ""
	case "source":
		return strings.TrimSpace(l.Source) != ""
	case "potentialValue":
		return l.PotentialValue != 0
	case "score":
		return l.Score != 0
	default:
		return customFieldPresent(l.CustomFields[field])
	}
}

func customFieldPresent(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
