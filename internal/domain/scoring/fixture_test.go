package scoring_test

import (
	"time"

	"github.com/okian/babypool/internal/domain/model"
)

func str(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func referenceActual() model.ActualOutcome {
	return model.ActualOutcome{
		FirstName:  "Gustavo",
		MiddleName: "Patrick",
		Gender:     "Chip",
		HairColor:  "purple",
		EyeColor:   "blue",
		Length:     42,
		WeightLbs:  3,
		WeightOzs:  14,
		Birthday:   date(2025, time.October, 11),
		LaborHours: 1,
		Epidural:   "Yes",
		CutCord:    "Yes",
		CatchBaby:  "No",
		Faint:      "No",
	}
}

func jackie() model.Guess {
	return model.Guess{
		Identity:   model.Identity{Name: "Jackie", Email: "Jac.kie", Timestamp: ":)"},
		FirstName:  "Gus",
		MiddleName: "Pat",
		Gender:     str("Chip"),
		HairColor:  str("Blue"),
		EyeColor:   str("Purple"),
		Length:     4,
		WeightLbs:  2,
		WeightOzs:  7,
		Birthday:   date(2025, time.October, 11),
		LaborHours: 2,
		Epidural:   str("Yes"),
		CutCord:    str("Yes"),
		CatchBaby:  str("No"),
		Faint:      str("No"),
	}
}

// brian has no hair color answer at all.
func brian() model.Guess {
	return model.Guess{
		Identity:   model.Identity{Name: "Brian", Email: "Bri.an", Timestamp: "0"},
		FirstName:  "Gustavo",
		MiddleName: "Patrick",
		Gender:     str("Dip"),
		EyeColor:   str("Purple"),
		Length:     2,
		WeightLbs:  3,
		WeightOzs:  14,
		Birthday:   date(2025, time.October, 10),
		LaborHours: 1,
		Epidural:   str("No"),
		CutCord:    str("No"),
		CatchBaby:  str("No"),
		Faint:      str("No"),
	}
}

// perfect answers every field exactly like referenceActual.
func perfect(name string) model.Guess {
	a := referenceActual()
	return model.Guess{
		Identity:   model.Identity{Name: name},
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		Gender:     str(a.Gender),
		HairColor:  str(a.HairColor),
		EyeColor:   str(a.EyeColor),
		Length:     float64(a.Length),
		WeightLbs:  float64(a.WeightLbs),
		WeightOzs:  float64(a.WeightOzs),
		Birthday:   a.Birthday,
		LaborHours: float64(a.LaborHours),
		Epidural:   str(a.Epidural),
		CutCord:    str(a.CutCord),
		CatchBaby:  str(a.CatchBaby),
		Faint:      str(a.Faint),
	}
}
