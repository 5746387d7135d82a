// Package model contains domain models passed between layers.
package model

// Field identifies one of the thirteen predicted attributes.
type Field int

// Predicted attributes in scoring order. The order is also the summation
// order of the overall score.
const (
	FirstName Field = iota
	MiddleName
	Gender
	HairColor
	EyeColor
	Length
	Weight
	Birthday
	LaborHours
	Epidural
	CutCord
	CatchBaby
	Faint

	// FieldCount is the number of predicted attributes.
	FieldCount int = iota
)

var fieldNames = [FieldCount]string{
	FirstName:  "First Name",
	MiddleName: "Middle Name",
	Gender:     "Gender",
	HairColor:  "Hair Color",
	EyeColor:   "Eye Color",
	Length:     "Length",
	Weight:     "Weight",
	Birthday:   "Birthday",
	LaborHours: "Labor Hours",
	Epidural:   "Epidural",
	CutCord:    "Cut Cord",
	CatchBaby:  "Catch Baby",
	Faint:      "Faint",
}

// Fields returns all predicted attributes in scoring order.
func Fields() []Field {
	out := make([]Field, FieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// String returns the display name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Magnitude reports whether the field's distance is an unbounded magnitude
// that has to be scaled by the column maximum.
func (f Field) Magnitude() bool {
	switch f {
	case Length, Weight, Birthday, LaborHours:
		return true
	default:
		return false
	}
}

// Categorical reports whether the field is compared by exact string match.
func (f Field) Categorical() bool {
	switch f {
	case Gender, HairColor, EyeColor, Epidural, CutCord, CatchBaby, Faint:
		return true
	default:
		return false
	}
}
