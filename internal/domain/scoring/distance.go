package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/okian/babypool/internal/domain/model"
	"github.com/pmezard/go-difflib/difflib"
)

const secondsPerDay = 24 * 60 * 60

// NameDistance returns 1 minus the Ratcliff/Obershelp similarity of the two
// names after trimming and lowercasing both.
func NameDistance(guess, actual string) float64 {
	a := splitRunes(normalizeName(guess))
	b := splitRunes(normalizeName(actual))
	return 1 - difflib.NewMatcher(a, b).Ratio()
}

// ExactDistance is 0 when the answers are identical and 1 otherwise.
// The comparison is case-sensitive.
func ExactDistance(guess, actual string) float64 {
	if guess == actual {
		return 0
	}
	return 1
}

// DaysBetween returns the absolute number of whole days between two dates.
// Time of day is ignored. Days are counted on Unix seconds because
// time.Duration cannot span more than about 292 years.
func DaysBetween(a, b time.Time) float64 {
	da := dateOf(a).Unix()
	db := dateOf(b).Unix()
	return math.Abs(float64((da - db) / secondsPerDay))
}

// fieldDistance computes the raw, unscaled distance of one field. The second
// return value is false when the guess carries no answer for the field.
func fieldDistance(f model.Field, g model.Guess, a model.ActualOutcome) (float64, bool) {
	if f.Categorical() {
		answer := g.Answer(f)
		if answer == nil {
			return 0, false
		}
		want, _ := a.Answer(f)
		return ExactDistance(*answer, want), true
	}

	switch f {
	case model.FirstName:
		return NameDistance(g.FirstName, a.FirstName), true
	case model.MiddleName:
		return NameDistance(g.MiddleName, a.MiddleName), true
	case model.Length:
		return math.Abs(g.Length - float64(a.Length)), true
	case model.Weight:
		return math.Abs(g.WeightPounds() - a.WeightPounds()), true
	case model.Birthday:
		return DaysBetween(g.Birthday, a.Birthday), true
	case model.LaborHours:
		return math.Abs(g.LaborHours - float64(a.LaborHours)), true
	}
	return 0, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitRunes turns a string into the one-element-per-character sequence the
// matcher works on.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
