// Package searchbar renders the trip search form. Every field is a stateless value built from the
// current TripQueryVariables and a setter, a change event never mutates the variables it was
// built from but hands a full replacement to the setter.
package searchbar

import (
	"errors"
	"html"

	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

var ErrUnknownField = errors.New("unknown search bar field")

// SetTripQueryVariables replaces the whole query owned by the caller
type SetTripQueryVariables func(tripquery.TripQueryVariables)

type Field interface {
	element.Component

	ID() string
	Label() string
	// Value is the text currently shown in the input
	Value() string
	OnChange(raw string)
}

const (
	fieldClass   = "search-bar-field"
	labelClass   = "form-label form-label-sm"
	controlClass = "form-control form-control-sm"
	selectClass  = "form-select form-select-sm"
)

func renderLabel(b *element.Builder, id string, label string) any {
	return b.Label("class", labelClass, "for", id).T(label)
}

func escape(value string) string {
	return html.EscapeString(value)
}

func optionAttributes(value string, selected bool) []string {
	attributes := []string{"value", value}
	if selected {
		attributes = append(attributes, "selected", "selected")
	}
	return attributes
}
