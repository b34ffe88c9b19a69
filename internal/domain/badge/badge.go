// Package badge derives a user's skill tier from their session totals.
package badge

import "github.com/CulturalProfessor/mettl-hack/internal/domain/model"

// Tier boundaries over the average session total. Ranges are closed-open
// and contiguous; 10 is the maximum attainable total and maps to Expert.
const (
	intermediateFloor = 4.0
	advancedFloor     = 7.0
	expertFloor       = 10.0
)

// TierFor maps an average session total to a badge tier.
func TierFor(averageScore float64) model.Tier {
	switch {
	case averageScore >= expertFloor:
		return model.TierExpert
	case averageScore >= advancedFloor:
		return model.TierAdvanced
	case averageScore >= intermediateFloor:
		return model.TierIntermediate
	default:
		return model.TierNewbie
	}
}

// Recompute derives the badge tier and score from a user's session totals.
// The badge score is the arithmetic mean over sessions, not over slots.
// A user with no sessions is a Newbie with score zero.
func Recompute(totals []float64) (model.Tier, float64) {
	if len(totals) == 0 {
		return model.TierNewbie, 0
	}
	sum := 0.0
	for _, t := range totals {
		sum += t
	}
	avg := sum / float64(len(totals))
	return TierFor(avg), avg
}
