package model

import "time"

// Identity is the opaque participant metadata carried through scoring.
type Identity struct {
	Name      string
	Email     string
	Timestamp string
}

// Guess is one participant's submission.
//
// Categorical answers are pointers: nil means the answer was absent from the
// upstream record, which is not the same as an empty answer.
type Guess struct {
	Identity

	FirstName  string
	MiddleName string
	Gender     *string
	HairColor  *string
	EyeColor   *string
	Length     float64
	WeightLbs  float64
	WeightOzs  float64
	Birthday   time.Time
	LaborHours float64
	Epidural   *string
	CutCord    *string
	CatchBaby  *string
	Faint      *string
}

// WeightPounds returns the guessed weight as fractional pounds.
func (g Guess) WeightPounds() float64 {
	return FractionalPounds(g.WeightLbs, g.WeightOzs)
}

// Answer returns the guessed categorical answer for f, or nil when absent or
// when f is not categorical.
func (g Guess) Answer(f Field) *string {
	switch f {
	case Gender:
		return g.Gender
	case HairColor:
		return g.HairColor
	case EyeColor:
		return g.EyeColor
	case Epidural:
		return g.Epidural
	case CutCord:
		return g.CutCord
	case CatchBaby:
		return g.CatchBaby
	case Faint:
		return g.Faint
	default:
		return nil
	}
}

// SetAnswer stores a categorical answer for f. Non-categorical fields are
// ignored.
func (g *Guess) SetAnswer(f Field, v *string) {
	switch f {
	case Gender:
		g.Gender = v
	case HairColor:
		g.HairColor = v
	case EyeColor:
		g.EyeColor = v
	case Epidural:
		g.Epidural = v
	case CutCord:
		g.CutCord = v
	case CatchBaby:
		g.CatchBaby = v
	case Faint:
		g.Faint = v
	}
}

// Result is the scored output for one guess.
//
// OverallScore sums difficulty-weighted correctness over all fields, so a
// larger value means the guesses landed closer to the actual outcome. It is
// relative to the batch it was computed in. It is not a distance: higher is
// better, even where the pool's write-up calls the number a distance.
type Result struct {
	Identity
	OverallScore float64
}
