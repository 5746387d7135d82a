package scoring_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/babypool/internal/domain/model"
	scoring "github.com/okian/babypool/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalcScores_Reference(t *testing.T) {
	Convey("Given the reference two-guess pool", t, func() {
		guesses := []model.Guess{jackie(), brian()}

		Convey("When scoring the batch", func() {
			results, err := scoring.CalcScores(context.Background(), guesses, referenceActual())

			Convey("Then every guess gets a result in input order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 2)
				So(results[0].Name, ShouldEqual, "Jackie")
				So(results[0].Email, ShouldEqual, "Jac.kie")
				So(results[0].Timestamp, ShouldEqual, ":)")
				So(results[1].Name, ShouldEqual, "Brian")
				So(results[1].Email, ShouldEqual, "Bri.an")
				So(results[1].Timestamp, ShouldEqual, "0")
			})

			Convey("And the overall scores match the known values", func() {
				So(err, ShouldBeNil)
				So(results[0].OverallScore, ShouldAlmostEqual, 2.64875, 1e-9)
				So(results[1].OverallScore, ShouldEqual, 2.0)
			})
		})
	})
}

func TestScorer_FieldStats(t *testing.T) {
	Convey("Given the reference pool", t, func() {
		report, err := scoring.NewScorer().Score(context.Background(), []model.Guess{jackie(), brian()}, referenceActual())
		So(err, ShouldBeNil)
		So(report.Fields, ShouldHaveLength, model.FieldCount)

		Convey("Then names are half as hard as a coin flip", func() {
			So(report.Fields[model.FirstName].Difficulty, ShouldAlmostEqual, 0.2, 1e-12)
			So(report.Fields[model.FirstName].MaxDistance, ShouldAlmostEqual, 0.4, 1e-12)
		})

		Convey("Then magnitude fields are scaled into [0,1]", func() {
			So(report.Fields[model.Length].MaxDistance, ShouldEqual, 1.0)
			So(report.Fields[model.Length].Difficulty, ShouldAlmostEqual, 0.975, 1e-12)
			So(report.Fields[model.Weight].Difficulty, ShouldEqual, 0.5)
		})

		Convey("Then an absent answer is left out of the field statistics", func() {
			So(report.Fields[model.HairColor].Answered, ShouldEqual, 1)
			So(report.Fields[model.HairColor].Difficulty, ShouldEqual, 1.0)
		})

		Convey("Then a field nobody missed has zero difficulty and zero max", func() {
			So(report.Fields[model.CatchBaby].Difficulty, ShouldEqual, 0.0)
			So(report.Fields[model.CatchBaby].MaxDistance, ShouldEqual, 0.0)
		})
	})
}

func TestScorer_Degenerate(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := scoring.NewScorer()
		ctx := context.Background()

		Convey("When the batch is empty", func() {
			_, err := scorer.Score(ctx, nil, referenceActual())

			Convey("Then it fails with ErrNoGuesses", func() {
				So(errors.Is(err, scoring.ErrNoGuesses), ShouldBeTrue)
			})
		})

		Convey("When everybody guessed the same magnitudes", func() {
			a, b := jackie(), brian()
			b.Length, b.WeightLbs, b.WeightOzs, b.Birthday, b.LaborHours = a.Length, a.WeightLbs, a.WeightOzs, a.Birthday, a.LaborHours
			report, err := scorer.Score(ctx, []model.Guess{a, b}, referenceActual())

			Convey("Then scaling does not divide by zero", func() {
				So(err, ShouldBeNil)
				for _, r := range report.Results {
					So(math.IsNaN(r.OverallScore), ShouldBeFalse)
					So(math.IsInf(r.OverallScore, 0), ShouldBeFalse)
				}
			})
		})

		Convey("When a magnitude column is all exact", func() {
			a, b := jackie(), brian()
			a.Birthday, b.Birthday = referenceActual().Birthday, referenceActual().Birthday
			report, err := scorer.Score(ctx, []model.Guess{a, b}, referenceActual())

			Convey("Then every scaled distance is zero", func() {
				So(err, ShouldBeNil)
				So(report.Fields[model.Birthday].MaxDistance, ShouldEqual, 0.0)
				So(report.Fields[model.Birthday].Difficulty, ShouldEqual, 0.0)
			})
		})

		Convey("When only one guess is scored", func() {
			report, err := scorer.Score(ctx, []model.Guess{jackie()}, referenceActual())

			Convey("Then every scaled magnitude distance is either 0 or 1", func() {
				So(err, ShouldBeNil)
				So(report.Results, ShouldHaveLength, 1)
				for _, f := range model.Fields() {
					st := report.Fields[f]
					So(st.MaxDistance, ShouldBeBetweenOrEqual, 0.0, 1.0)
					So(st.Difficulty, ShouldBeBetweenOrEqual, 0.0, 1.0)
				}
				So(math.IsNaN(report.Results[0].OverallScore), ShouldBeFalse)
			})
		})

		Convey("When a guess carries a non-finite magnitude", func() {
			bad := brian()
			bad.Length = math.NaN()
			_, err := scorer.Score(ctx, []model.Guess{jackie(), bad}, referenceActual())

			Convey("Then the whole batch fails with a located parse error", func() {
				So(errors.Is(err, model.ErrParse), ShouldBeTrue)
				var fe *model.FieldError
				So(errors.As(err, &fe), ShouldBeTrue)
				So(fe.Row, ShouldEqual, 1)
				So(fe.Field, ShouldEqual, "Length")
			})
		})
	})
}

func TestScorer_Properties(t *testing.T) {
	Convey("Given a larger pool", t, func() {
		far := jackie()
		far.Identity = model.Identity{Name: "Far"}
		far.Length = 80
		far.LaborHours = 30
		guesses := []model.Guess{jackie(), perfect("Exact"), brian(), far, perfect("Exact")}

		report, err := scoring.NewScorer().Score(context.Background(), guesses, referenceActual())
		So(err, ShouldBeNil)

		Convey("Then result order and identity are preserved, duplicates included", func() {
			So(report.Results, ShouldHaveLength, len(guesses))
			for i, g := range guesses {
				So(report.Results[i].Identity, ShouldResemble, g.Identity)
			}
		})

		Convey("Then a perfect guess outscores every imperfect one", func() {
			exact := report.Results[1].OverallScore
			So(report.Results[4].OverallScore, ShouldEqual, exact)
			for _, i := range []int{0, 2, 3} {
				So(report.Results[i].OverallScore, ShouldBeLessThan, exact)
			}
		})

		Convey("Then scores are nonnegative", func() {
			for _, r := range report.Results {
				So(r.OverallScore, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("Then every field statistic lies in [0,1]", func() {
			for _, st := range report.Fields {
				So(st.Difficulty, ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(st.MaxDistance, ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(st.Difficulty, ShouldBeLessThanOrEqualTo, st.MaxDistance)
			}
		})
	})
}

func TestScorer_AbsentAnswers(t *testing.T) {
	Convey("Given a pool where nobody answered the faint question", t, func() {
		a, b := jackie(), brian()
		a.Faint, b.Faint = nil, nil

		withFaint, err := scoring.CalcScores(context.Background(), []model.Guess{jackie(), brian()}, referenceActual())
		So(err, ShouldBeNil)
		withoutFaint, err := scoring.CalcScores(context.Background(), []model.Guess{a, b}, referenceActual())
		So(err, ShouldBeNil)

		Convey("Then the field contributes nothing and scores are unchanged", func() {
			// Everybody matched faint, so its difficulty was already zero.
			So(withoutFaint[0].OverallScore, ShouldAlmostEqual, withFaint[0].OverallScore, 1e-12)
			So(withoutFaint[1].OverallScore, ShouldAlmostEqual, withFaint[1].OverallScore, 1e-12)
		})
	})

	Convey("Given an empty answer instead of an absent one", t, func() {
		b := brian()
		b.HairColor = str("")
		report, err := scoring.NewScorer().Score(context.Background(), []model.Guess{jackie(), b}, referenceActual())

		Convey("Then it counts as a mismatch", func() {
			So(err, ShouldBeNil)
			So(report.Fields[model.HairColor].Answered, ShouldEqual, 2)
			So(report.Fields[model.HairColor].Difficulty, ShouldEqual, 1.0)
		})
	})
}

func TestScorer_DistantBirthdays(t *testing.T) {
	Convey("Given birthday guesses centuries after the actual date", t, func() {
		early := perfect("early")
		early.Birthday = date(2500, time.October, 11)
		late := perfect("late")
		late.Birthday = date(9999, time.October, 11)

		Convey("When scoring the batch", func() {
			report, err := scoring.NewScorer().Score(context.Background(), []model.Guess{early, late}, referenceActual())

			Convey("Then the birthday column is scaled by the true largest distance", func() {
				So(err, ShouldBeNil)
				st := report.Fields[model.Birthday]
				So(st.MaxDistance, ShouldEqual, 1.0)
				So(st.Difficulty, ShouldAlmostEqual, (173490.0/2912443.0+1)/2, 1e-12)
				So(report.Results[0].OverallScore, ShouldBeGreaterThan, report.Results[1].OverallScore)
			})
		})
	})
}
