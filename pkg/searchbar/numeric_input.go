package searchbar

import (
	"math"
	"strconv"
	"strings"

	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

// NumericLimitInput is a number input bound to one optional positive integer. Entered fractions
// are rounded up to the next whole number ("2.5" stores 3), anything not positive unsets the value.
type NumericLimitInput struct {
	InputID     string
	InputLabel  string
	Placeholder string

	Current  *int
	SetValue func(*int)
}

func (n NumericLimitInput) ID() string    { return n.InputID }
func (n NumericLimitInput) Label() string { return n.InputLabel }

func (n NumericLimitInput) Value() string {
	if n.Current == nil {
		return ""
	}
	return strconv.Itoa(*n.Current)
}

// OnChange runs on every keystroke. Anything that is not a positive number clears the field.
func (n NumericLimitInput) OnChange(raw string) {
	n.SetValue(ParsePositive(raw))
}

func (n NumericLimitInput) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, n.InputID, n.InputLabel),
		b.Input("type", "number", "class", controlClass, "id", n.InputID, "name", n.InputID,
			"placeholder", n.Placeholder, "min", "1", "value", n.Value()),
	)
	return
}

// ParsePositive reads raw input text as a number and returns it when it is strictly positive.
// Empty text counts as zero. Fractions are rounded up so a positive entry never becomes zero.
func ParsePositive(raw string) *int {
	number := parseNumber(raw)

	if math.IsNaN(number) || number <= 0 || number > math.MaxInt32 {
		return nil
	}

	value := int(math.Ceil(number))
	return &value
}

func parseNumber(raw string) float64 {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0
	}
	if strings.Contains(text, "_") {
		return math.NaN()
	}

	if number, err := strconv.ParseFloat(text, 64); err == nil {
		return number
	}

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") || strings.HasPrefix(lower, "0o") {
		if number, err := strconv.ParseInt(lower, 0, 64); err == nil {
			return float64(number)
		}
	}

	return math.NaN()
}

type NumTripPatternsInput struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (n NumTripPatternsInput) input() NumericLimitInput {
	return NumericLimitInput{
		InputID:     "numTripPatternsInput",
		InputLabel:  "Number of trip patterns",
		Placeholder: "12",
		Current:     n.TripQueryVariables.NumTripPatterns,
		SetValue: func(value *int) {
			n.SetTripQueryVariables(n.TripQueryVariables.WithNumTripPatterns(value))
		},
	}
}

func (n NumTripPatternsInput) ID() string                    { return n.input().ID() }
func (n NumTripPatternsInput) Label() string                 { return n.input().Label() }
func (n NumTripPatternsInput) Value() string                 { return n.input().Value() }
func (n NumTripPatternsInput) OnChange(raw string)           { n.input().OnChange(raw) }
func (n NumTripPatternsInput) Render(b *element.Builder) any { return n.input().Render(b) }

type SearchWindowInput struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables

	// Placeholder hints the planner default, in minutes
	Placeholder string
}

func (s SearchWindowInput) input() NumericLimitInput {
	return NumericLimitInput{
		InputID:     "searchWindowInput",
		InputLabel:  "Search window (minutes)",
		Placeholder: s.Placeholder,
		Current:     s.TripQueryVariables.SearchWindow,
		SetValue: func(value *int) {
			s.SetTripQueryVariables(s.TripQueryVariables.WithSearchWindow(value))
		},
	}
}

func (s SearchWindowInput) ID() string                    { return s.input().ID() }
func (s SearchWindowInput) Label() string                 { return s.input().Label() }
func (s SearchWindowInput) Value() string                 { return s.input().Value() }
func (s SearchWindowInput) OnChange(raw string)           { s.input().OnChange(raw) }
func (s SearchWindowInput) Render(b *element.Builder) any { return s.input().Render(b) }
