package badge_test

import (
	"testing"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/badge"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTierFor(t *testing.T) {
	Convey("Given the badge tier boundaries", t, func() {
		Convey("Then scores below 4 map to Newbie", func() {
			So(badge.TierFor(0), ShouldEqual, model.TierNewbie)
			So(badge.TierFor(2.5), ShouldEqual, model.TierNewbie)
			So(badge.TierFor(3.999), ShouldEqual, model.TierNewbie)
		})

		Convey("Then scores in [4,7) map to Intermediate", func() {
			So(badge.TierFor(4), ShouldEqual, model.TierIntermediate)
			So(badge.TierFor(5.6), ShouldEqual, model.TierIntermediate)
			So(badge.TierFor(6.999), ShouldEqual, model.TierIntermediate)
		})

		Convey("Then scores in [7,10) map to Advanced", func() {
			So(badge.TierFor(7), ShouldEqual, model.TierAdvanced)
			So(badge.TierFor(9.999), ShouldEqual, model.TierAdvanced)
		})

		Convey("Then the maximum total maps to Expert", func() {
			So(badge.TierFor(10), ShouldEqual, model.TierExpert)
		})
	})
}

func TestRecompute(t *testing.T) {
	Convey("Given a set of session totals", t, func() {
		Convey("When the user has no sessions", func() {
			tier, score := badge.Recompute(nil)

			Convey("Then the badge defaults to Newbie with score zero", func() {
				So(tier, ShouldEqual, model.TierNewbie)
				So(score, ShouldEqual, 0)
			})
		})

		Convey("When the user has a single session", func() {
			tier, score := badge.Recompute([]float64{5.6})

			Convey("Then the badge score is that session's total", func() {
				So(score, ShouldEqual, 5.6)
				So(tier, ShouldEqual, model.TierIntermediate)
			})
		})

		Convey("When the user has several sessions", func() {
			tier, score := badge.Recompute([]float64{8.0, 7.0, 9.0})

			Convey("Then the badge score is the mean over sessions", func() {
				So(score, ShouldEqual, 8.0)
				So(tier, ShouldEqual, model.TierAdvanced)
			})
		})

		Convey("When recomputed twice with the same totals", func() {
			t1, s1 := badge.Recompute([]float64{3.0, 4.0})
			t2, s2 := badge.Recompute([]float64{3.0, 4.0})

			Convey("Then the result is identical", func() {
				So(t1, ShouldEqual, t2)
				So(s1, ShouldEqual, s2)
			})
		})
	})
}
