// Package record decodes raw form rows into guesses.
//
// Rows arrive as maps keyed by the form question titles. Values are either
// strings or numbers, depending on how the sheet export typed the cell.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/babypool/internal/domain/model"
)

// Form question titles. These are the external field-name contract with the
// record source.
const (
	KeyName       = "Your Name"
	KeyEmail      = "Your Email"
	KeyTimestamp  = "Timestamp"
	KeyFirstName  = "Baby's First Name"
	KeyMiddleName = "Middle Name"
	KeyGender     = "Gender"
	KeyHairColor  = "Hair Color"
	KeyEyeColor   = "Eye Color"
	KeyLength     = "Length (in inches)"
	KeyWeightLbs  = "Weight, pounds part (this question is together with the next question)"
	KeyWeightOzs  = "Weight, ounces part (this question is together with the previous question)"
	KeyBirthday   = "Birthday"
	KeyLaborHours = "Hours in labor *in the hospital* before delivery"
	KeyEpidural   = "Did Ashlynne get an epidural?"
	KeyCutCord    = "Did Nacho cut the cord?"
	KeyCatchBaby  = "Did Nacho catch the baby?!"
	KeyFaint      = "Did Nacho faint?!!"
)

// Raw is one undecoded row.
type Raw = map[string]any

var categoricalKeys = []struct {
	field model.Field
	key   string
}{
	{model.Gender, KeyGender},
	{model.HairColor, KeyHairColor},
	{model.EyeColor, KeyEyeColor},
	{model.Epidural, KeyEpidural},
	{model.CutCord, KeyCutCord},
	{model.CatchBaby, KeyCatchBaby},
	{model.Faint, KeyFaint},
}

// Keys returns every key of the contract in form order.
func Keys() []string {
	return []string{
		KeyName, KeyEmail, KeyTimestamp,
		KeyFirstName, KeyMiddleName, KeyGender, KeyHairColor, KeyEyeColor,
		KeyLength, KeyWeightLbs, KeyWeightOzs, KeyBirthday, KeyLaborHours,
		KeyEpidural, KeyCutCord, KeyCatchBaby, KeyFaint,
	}
}

// DecodeAll decodes every row. The first bad row aborts the batch and the
// returned error is a *model.FieldError carrying the row index.
func DecodeAll(rows []Raw) ([]model.Guess, error) {
	out := make([]model.Guess, len(rows))
	for i, r := range rows {
		g, err := Decode(r)
		if err != nil {
			var fe *model.FieldError
			if errors.As(err, &fe) {
				fe.Row = i
				return nil, fe
			}
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = g
	}
	return out, nil
}

// Decode decodes a single row.
//
// Identity, names, magnitudes and the birthday are required. A categorical
// answer whose key is absent (or null) decodes to nil; see model.Guess.
func Decode(r Raw) (model.Guess, error) {
	d := decoder{raw: r}
	g := model.Guess{
		Identity: model.Identity{
			Name:      d.text(KeyName),
			Email:     d.text(KeyEmail),
			Timestamp: d.text(KeyTimestamp),
		},
		FirstName:  d.text(KeyFirstName),
		MiddleName: d.text(KeyMiddleName),
		Length:     d.number(KeyLength),
		WeightLbs:  d.number(KeyWeightLbs),
		WeightOzs:  d.number(KeyWeightOzs),
		Birthday:   d.date(KeyBirthday),
		LaborHours: d.number(KeyLaborHours),
	}
	for _, c := range categoricalKeys {
		g.SetAnswer(c.field, d.optionalText(c.key))
	}
	if d.err != nil {
		return model.Guess{}, d.err
	}
	return g, nil
}

// decoder keeps the first error so Decode reads top to bottom.
type decoder struct {
	raw Raw
	err error
}

func (d *decoder) fail(key string, kind error, cause error) {
	if d.err != nil {
		return
	}
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %v", kind, cause)
	}
	d.err = &model.FieldError{Row: -1, Field: key, Err: err}
}

func (d *decoder) lookup(key string) (any, bool) {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d *decoder) text(key string) string {
	v, ok := d.lookup(key)
	if !ok {
		d.fail(key, model.ErrMissingField, nil)
		return ""
	}
	s, err := toText(v)
	if err != nil {
		d.fail(key, model.ErrParse, err)
	}
	return s
}

func (d *decoder) optionalText(key string) *string {
	v, ok := d.lookup(key)
	if !ok {
		return nil
	}
	s, err := toText(v)
	if err != nil {
		d.fail(key, model.ErrParse, err)
		return nil
	}
	return &s
}

func (d *decoder) number(key string) float64 {
	v, ok := d.lookup(key)
	if !ok {
		d.fail(key, model.ErrMissingField, nil)
		return 0
	}
	n, err := toNumber(v)
	if err != nil {
		d.fail(key, model.ErrParse, err)
	}
	return n
}

func (d *decoder) date(key string) (t time.Time) {
	v, ok := d.lookup(key)
	if !ok {
		d.fail(key, model.ErrMissingField, nil)
		return t
	}
	s, isString := v.(string)
	if !isString {
		d.fail(key, model.ErrParse, fmt.Errorf("want month/day/year string, got %T", v))
		return t
	}
	parsed, err := model.ParseBirthday(strings.TrimSpace(s))
	if err != nil {
		d.fail(key, model.ErrParse, err)
		return t
	}
	return parsed
}

// toText keeps strings verbatim and renders numbers the way a sheet shows
// them.
func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func toNumber(v any) (float64, error) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, err
		}
		n = f
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("non-finite value %v", n)
	}
	return n, nil
}
