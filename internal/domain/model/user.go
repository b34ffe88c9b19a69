package model

import "time"

// Tier is the coarse skill badge derived from a user's session totals.
type Tier string

const (
	TierNewbie       Tier = "Newbie"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
)

// User is a candidate profile. Email is the identity; sessions reference it
// as OwnerID. Revision supports compare-and-set updates in the store.
type User struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Phone       string    `json:"phone"`
	ResumeImage string    `json:"resume_image"`
	BadgeTier   Tier      `json:"badge_tier"`
	BadgeScore  float64   `json:"badge_score"`
	Revision    int64     `json:"revision"`
	CreatedAt   time.Time `json:"created_at"`
}
