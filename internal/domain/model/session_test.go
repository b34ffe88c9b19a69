package model_test

import (
	"errors"
	"fmt"
	"testing"

	model "github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func tenQuestions() []string {
	qs := make([]string, model.SlotCount)
	for i := range qs {
		qs[i] = fmt.Sprintf("Q%d", i)
	}
	return qs
}

func TestNewSession(t *testing.T) {
	Convey("Given exactly ten generated questions", t, func() {
		s, err := model.NewSession("sess-1", "alice@example.com", tenQuestions())
		So(err, ShouldBeNil)

		Convey("Then the session has ten slots in generator order", func() {
			So(len(s.Slots), ShouldEqual, 10)
			for i, slot := range s.Slots {
				So(slot.Question, ShouldEqual, fmt.Sprintf("Q%d", i))
			}
		})

		Convey("Then slots 0 and 9 are background, the rest technical", func() {
			So(s.Slots[0].Type, ShouldEqual, model.SlotBackground)
			So(s.Slots[9].Type, ShouldEqual, model.SlotBackground)
			for i := 1; i <= 8; i++ {
				So(s.Slots[i].Type, ShouldEqual, model.SlotTechnical)
			}
		})

		Convey("Then all slots start unanswered and the total is zero", func() {
			So(s.TotalScore, ShouldEqual, 0)
			So(s.Complete(), ShouldBeFalse)
			for _, slot := range s.Slots {
				So(slot.Answer, ShouldEqual, "")
				So(slot.Answered(), ShouldBeFalse)
			}
		})
	})

	Convey("Given the wrong number of questions", t, func() {
		_, err := model.NewSession("sess-2", "alice@example.com", tenQuestions()[:9])

		Convey("Then creation fails with a question-count error", func() {
			So(errors.Is(err, model.ErrQuestionCount), ShouldBeTrue)
		})
	})

	Convey("Given an empty question string", t, func() {
		qs := tenQuestions()
		qs[4] = ""
		_, err := model.NewSession("sess-3", "alice@example.com", qs)

		Convey("Then creation fails with a question-count error", func() {
			So(errors.Is(err, model.ErrQuestionCount), ShouldBeTrue)
		})
	})
}

func TestWithAnswer(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s, err := model.NewSession("sess-1", "alice@example.com", tenQuestions())
		So(err, ShouldBeNil)

		Convey("When recording a score of 8 on slot 0", func() {
			next, err := s.WithAnswer(0, "my background", 8)
			So(err, ShouldBeNil)

			Convey("Then the total becomes 0.8", func() {
				So(next.TotalScore, ShouldEqual, 0.8)
				So(next.Slots[0].Answer, ShouldEqual, "my background")
				So(next.Slots[0].Score, ShouldEqual, 8)
			})

			Convey("Then the original snapshot is untouched", func() {
				So(s.TotalScore, ShouldEqual, 0)
				So(s.Slots[0].Answer, ShouldEqual, "")
				So(s.Slots[0].Score, ShouldEqual, 0)
			})
		})

		Convey("When answering every slot", func() {
			scores := []int{8, 5, 5, 5, 5, 5, 5, 5, 5, 8}
			next := s
			for i, sc := range scores {
				var err error
				next, err = next.WithAnswer(i, fmt.Sprintf("A%d", i), sc)
				So(err, ShouldBeNil)
			}

			Convey("Then the total is the sum divided by the slot count", func() {
				So(next.TotalScore, ShouldEqual, 5.6)
				So(next.Complete(), ShouldBeTrue)
			})
		})

		Convey("When the slot index is out of range", func() {
			_, errLow := s.WithAnswer(-1, "a", 5)
			_, errHigh := s.WithAnswer(10, "a", 5)

			Convey("Then both fail with a slot-index error", func() {
				So(errors.Is(errLow, model.ErrSlotIndex), ShouldBeTrue)
				So(errors.Is(errHigh, model.ErrSlotIndex), ShouldBeTrue)
			})
		})

		Convey("When the score is out of range", func() {
			_, errZero := s.WithAnswer(1, "a", 0)
			_, errBig := s.WithAnswer(1, "a", 11)

			Convey("Then both fail with a score-range error", func() {
				So(errors.Is(errZero, model.ErrScoreRange), ShouldBeTrue)
				So(errors.Is(errBig, model.ErrScoreRange), ShouldBeTrue)
			})
		})
	})
}

func TestAggregateScore(t *testing.T) {
	Convey("Given a set of slots", t, func() {
		s, err := model.NewSession("sess-1", "alice@example.com", tenQuestions())
		So(err, ShouldBeNil)

		Convey("Then an unanswered session aggregates to zero", func() {
			So(model.AggregateScore(s.Slots), ShouldEqual, 0)
		})

		Convey("Then a single answered slot is divided by the full slot count", func() {
			next, err := s.WithAnswer(3, "a", 10)
			So(err, ShouldBeNil)
			// Deliberately 1.0, not 10: incomplete sessions read deflated.
			So(model.AggregateScore(next.Slots), ShouldEqual, 1.0)
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a session clone", t, func() {
		s, err := model.NewSession("sess-1", "alice@example.com", tenQuestions())
		So(err, ShouldBeNil)
		c := s.Clone()
		c.Slots[2].Answer = "mutated"
		c.Slots[2].Score = 7

		Convey("Then mutating the clone does not touch the original", func() {
			So(s.Slots[2].Answer, ShouldEqual, "")
			So(s.Slots[2].Score, ShouldEqual, 0)
		})
	})
}
