// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// SlotCount is the fixed number of question slots in every session.
const SlotCount = 10

// Indices of the two personal-background questions. Everything in
// between is a technical question.
const (
	backgroundFirst = 0
	backgroundLast  = SlotCount - 1
)

// Score bounds for a single answered slot. Zero means "not answered yet".
const (
	MinScore = 1
	MaxScore = 10
)

// SlotType classifies a question slot.
type SlotType string

const (
	SlotBackground SlotType = "Background"
	SlotTechnical  SlotType = "Technical"
)

// SlotTypeFor returns the slot type for a given slot index.
func SlotTypeFor(index int) SlotType {
	if index == backgroundFirst || index == backgroundLast {
		return SlotBackground
	}
	return SlotTechnical
}

// QuestionSlot is a single question with its (optional) answer and score.
type QuestionSlot struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Score    int      `json:"score"`
	Type     SlotType `json:"type"`
}

// Answered reports whether a score has been recorded for this slot.
func (q QuestionSlot) Answered() bool {
	return q.Score != 0
}

// Session is an interview session owned by a single user.
// Revision supports compare-and-set updates in the store.
type Session struct {
	ID         string         `json:"session_id"`
	OwnerID    string         `json:"owner_id"`
	Slots      []QuestionSlot `json:"slots"`
	TotalScore float64        `json:"total_score"`
	Revision   int64          `json:"revision"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewSession builds a fresh session from exactly SlotCount generated
// questions, assigning slot types by index. TotalScore starts at zero.
func NewSession(id, ownerID string, questions []string) (Session, error) {
	if len(questions) != SlotCount {
		return Session{}, fmt.Errorf("%w: got %d questions, want %d", ErrQuestionCount, len(questions), SlotCount)
	}
	slots := make([]QuestionSlot, SlotCount)
	for i, q := range questions {
		if q == "" {
			return Session{}, fmt.Errorf("%w: empty question at index %d", ErrQuestionCount, i)
		}
		slots[i] = QuestionSlot{
			Question: q,
			Type:     SlotTypeFor(i),
		}
	}
	return Session{
		ID:        id,
		OwnerID:   ownerID,
		Slots:     slots,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.Slots = make([]QuestionSlot, len(s.Slots))
	copy(out.Slots, s.Slots)
	return out
}

// Complete reports whether every slot has been answered.
func (s Session) Complete() bool {
	for _, slot := range s.Slots {
		if !slot.Answered() {
			return false
		}
	}
	return true
}

// WithAnswer returns a copy of the session with the given slot's answer and
// score recorded and TotalScore recomputed. The receiver is not mutated;
// callers commit the returned snapshot with a revision check.
func (s Session) WithAnswer(slotIndex int, answer string, score int) (Session, error) {
	if slotIndex < 0 || slotIndex >= len(s.Slots) {
		return Session{}, fmt.Errorf("%w: slot %d outside [0,%d)", ErrSlotIndex, slotIndex, len(s.Slots))
	}
	if score < MinScore || score > MaxScore {
		return Session{}, fmt.Errorf("%w: score %d outside [%d,%d]", ErrScoreRange, score, MinScore, MaxScore)
	}
	out := s.Clone()
	out.Slots[slotIndex].Answer = answer
	out.Slots[slotIndex].Score = score
	out.TotalScore = AggregateScore(out.Slots)
	return out, nil
}

// AggregateScore computes the session total: the sum of slot scores divided
// by the fixed slot count. Unanswered slots count as zero, so a partially
// answered session reads lower than the mean of its answered slots. That is
// intentional and load-bearing for badge computation; do not change the
// divisor to the answered-slot count.
func AggregateScore(slots []QuestionSlot) float64 {
	sum := 0
	for _, slot := range slots {
		sum += slot.Score
	}
	return float64(sum) / float64(SlotCount)
}
