package lead

import "strings"

// DuplicateThreshold is the minimum similarity score at which two leads are
// considered duplicates.
const DuplicateThreshold = 50

// DuplicateScore rates how likely a and b describe the same prospect.
// Scores are additive: +50 for an equal-fold email match, +40 for an
// identical phone string, +20 for a company substring match in either
// direction. Empty fields never match; otherwise every pair of sparse
// records would score as duplicates.
func DuplicateScore(a, b *Lead) int {
	score := 0

	if a.Email != "" && strings.EqualFold(a.Email, b.Email) {
		score += 50
	}
	if a.Phone != "" && a.Phone == b.Phone {
		score += 40
	}
	aCompany := strings.ToLower(strings.TrimSpace(a.Company))
	bCompany := strings.ToLower(strings.TrimSpace(b.Company))
	if aCompany != "" && bCompany != "" &&
		(strings.Contains(aCompany, bCompany) || strings.Contains(bCompany, aCompany)) {
		score += 20
	}

	return score
}
