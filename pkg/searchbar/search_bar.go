package searchbar

import (
	"fmt"

	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

// SearchBar lays out the fields in a fixed order next to the Route button. It holds no state of
// its own, the variables and setter belong to whoever builds it.
type SearchBar struct {
	OnRoute               func()
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables

	Clock                   Clock
	SearchWindowPlaceholder string
}

func (s SearchBar) Fields() []Field {
	variables := s.TripQueryVariables
	set := s.SetTripQueryVariables

	return []Field{
		LocationInput{
			InputID:    "fromInputField",
			InputLabel: "From",
			Location:   variables.From,
			SetLocation: func(location *tripquery.Location) {
				set(variables.WithFrom(location))
			},
		},
		LocationInput{
			InputID:    "toInputField",
			InputLabel: "To",
			Location:   variables.To,
			SetLocation: func(location *tripquery.Location) {
				set(variables.WithTo(location))
			},
		},
		DepartureArrivalSelect{TripQueryVariables: variables, SetTripQueryVariables: set},
		TimeInput{TripQueryVariables: variables, SetTripQueryVariables: set, Clock: s.Clock},
		DateInput{TripQueryVariables: variables, SetTripQueryVariables: set, Clock: s.Clock},
		NumTripPatternsInput{TripQueryVariables: variables, SetTripQueryVariables: set},
		SearchWindowInput{TripQueryVariables: variables, SetTripQueryVariables: set, Placeholder: s.SearchWindowPlaceholder},
		AccessSelect{TripQueryVariables: variables, SetTripQueryVariables: set},
		TransitModeSelect{TripQueryVariables: variables, SetTripQueryVariables: set},
		EgressSelect{TripQueryVariables: variables, SetTripQueryVariables: set},
		DirectModeSelect{TripQueryVariables: variables, SetTripQueryVariables: set},
	}
}

func (s SearchBar) Field(id string) (Field, error) {
	for _, field := range s.Fields() {
		if field.ID() == id {
			return field, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownField, id)
}

// Change feeds one input event to the field with the given id
func (s SearchBar) Change(id string, raw string) error {
	field, err := s.Field(id)
	if err != nil {
		return err
	}

	field.OnChange(raw)
	return nil
}

// Route runs the search with whatever the variables currently hold
func (s SearchBar) Route() {
	if s.OnRoute != nil {
		s.OnRoute()
	}
}

func (s SearchBar) Render(b *element.Builder) (x any) {
	b.Section("class", "search-bar-container").R(
		b.DivClass("hstack gap-2").R(
			s.renderFields(b),
			b.DivClass("search-bar-route-button-wrapper").R(
				b.Button("type", "button", "class", "btn btn-primary", "id", "routeButton", "name", "route").T("Route"),
			),
		),
	)
	return
}

func (s SearchBar) renderFields(b *element.Builder) (x any) {
	for _, field := range s.Fields() {
		field.Render(b)
	}
	return
}

// HTML renders the search bar on its own
func (s SearchBar) HTML() string {
	b := element.NewBuilder()
	s.Render(b)
	return b.String()
}
