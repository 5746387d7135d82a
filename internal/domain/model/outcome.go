package model

import "time"

// BirthdayLayout is the month/day/year layout used for birthdays both in
// submitted guesses and in the configured outcome.
const BirthdayLayout = "1/2/2006"

// ActualOutcome is the ground truth every guess is compared against.
type ActualOutcome struct {
	FirstName  string
	MiddleName string
	Gender     string
	HairColor  string
	EyeColor   string
	Length     int // inches
	WeightLbs  int
	WeightOzs  int
	Birthday   time.Time // date only, UTC midnight
	LaborHours int
	Epidural   string
	CutCord    string
	CatchBaby  string
	Faint      string
}

// WeightPounds returns the weight as fractional pounds.
func (a ActualOutcome) WeightPounds() float64 {
	return FractionalPounds(float64(a.WeightLbs), float64(a.WeightOzs))
}

// Answer returns the configured categorical answer for f. It returns false
// for non-categorical fields.
func (a ActualOutcome) Answer(f Field) (string, bool) {
	switch f {
	case Gender:
		return a.Gender, true
	case HairColor:
		return a.HairColor, true
	case EyeColor:
		return a.EyeColor, true
	case Epidural:
		return a.Epidural, true
	case CutCord:
		return a.CutCord, true
	case CatchBaby:
		return a.CatchBaby, true
	case Faint:
		return a.Faint, true
	default:
		return "", false
	}
}

// FractionalPounds combines a pounds and ounces pair.
func FractionalPounds(lbs, ozs float64) float64 {
	return lbs + ozs/16.
}

// ParseBirthday parses a month/day/year date into a UTC date.
func ParseBirthday(s string) (time.Time, error) {
	return time.Parse(BirthdayLayout, s)
}
