// Package terminal drives the search bar from an interactive terminal form
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

type TripPlanner interface {
	Trip(ctx context.Context, variables tripquery.TripQueryVariables) (*planner.Trip, error)
}

// Form asks for every search bar field once and then runs the Route action
type Form struct {
	Planner TripPlanner
	Clock   searchbar.Clock
	Output  io.Writer
}

// runForm is replaced in tests, a real prompt needs a terminal
var runForm = func(ctx context.Context, form *huh.Form) error {
	return form.RunWithContext(ctx)
}

// Answer holds what the user entered for one field until the form is submitted
type Answer struct {
	ID       string
	Text     string
	Multiple []string
	IsMulti  bool
}

func (a *Answer) Raw() string {
	if a.IsMulti {
		return strings.Join(a.Multiple, ",")
	}
	return a.Text
}

func (f *Form) Run(ctx context.Context, initial tripquery.TripQueryVariables) (tripquery.TripQueryVariables, error) {
	bar := f.searchBar(initial, nil, nil)

	answers := seedAnswers(bar)

	var fields []huh.Field
	for i, field := range bar.Fields() {
		fields = append(fields, f.huhField(field, answers[i]))
	}

	route := true
	fields = append(fields, huh.NewConfirm().Title("Route").Affirmative("Search").Negative("Cancel").Value(&route))

	if err := runForm(ctx, huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return initial, err
	}

	variables, err := Apply(f.searchBar, initial, answers)
	if err != nil {
		return variables, err
	}

	if !route {
		return variables, nil
	}

	return variables, f.Route(ctx, variables)
}

// seedAnswers starts every answer from what the field currently displays
func seedAnswers(bar searchbar.SearchBar) []*Answer {
	var answers []*Answer
	for _, field := range bar.Fields() {
		a := &Answer{ID: field.ID(), Text: field.Value()}
		if _, ok := field.(searchbar.TransitModeSelect); ok {
			a.IsMulti = true
			if a.Text != "" {
				a.Multiple = strings.Split(a.Text, ",")
			}
		}
		answers = append(answers, a)
	}
	return answers
}

// Apply feeds the submitted answers through the search bar one change at a time, rebuilding the
// bar after each change so the next field edits the latest variables. Answers left as the field
// displayed them are skipped.
func Apply(
	build func(tripquery.TripQueryVariables, searchbar.SetTripQueryVariables, func()) searchbar.SearchBar,
	initial tripquery.TripQueryVariables,
	answers []*Answer,
) (tripquery.TripQueryVariables, error) {
	variables := initial
	set := func(next tripquery.TripQueryVariables) {
		variables = next
	}

	for _, a := range answers {
		field, err := build(variables, set, nil).Field(a.ID)
		if err != nil {
			return variables, err
		}

		if a.Raw() == field.Value() {
			continue
		}

		field.OnChange(a.Raw())
	}

	return variables, nil
}

// Route runs the trip query through the search bar's Route action and prints the trip patterns
func (f *Form) Route(ctx context.Context, variables tripquery.TripQueryVariables) error {
	var trip *planner.Trip
	var err error

	f.searchBar(variables, nil, func() {
		trip, err = f.Planner.Trip(ctx, variables)
	}).Route()

	if err != nil {
		return err
	}

	PrintTrip(f.Output, trip, f.Clock)
	return nil
}

func (f *Form) searchBar(variables tripquery.TripQueryVariables, set searchbar.SetTripQueryVariables, onRoute func()) searchbar.SearchBar {
	return searchbar.SearchBar{
		OnRoute:               onRoute,
		TripQueryVariables:    variables,
		SetTripQueryVariables: set,
		Clock:                 f.Clock,
	}
}

func (f *Form) huhField(field searchbar.Field, a *Answer) huh.Field {
	switch field.(type) {
	case searchbar.DepartureArrivalSelect:
		return huh.NewSelect[string]().
			Title(field.Label()).
			Options(
				huh.NewOption("Departure", "departure"),
				huh.NewOption("Arrival", "arrival"),
			).
			Value(&a.Text)
	case searchbar.AccessSelect, searchbar.EgressSelect, searchbar.DirectModeSelect:
		options := []huh.Option[string]{huh.NewOption("Not selected", "")}
		for _, mode := range tripquery.StreetModes {
			options = append(options, huh.NewOption(mode.Label(), string(mode)))
		}

		return huh.NewSelect[string]().
			Title(field.Label()).
			Options(options...).
			Value(&a.Text)
	case searchbar.TransitModeSelect:
		var options []huh.Option[string]
		for _, mode := range tripquery.TransportModeList {
			options = append(options, huh.NewOption(mode.Label(), string(mode)))
		}

		return huh.NewMultiSelect[string]().
			Title(field.Label()).
			Description("Nothing selected searches every transit mode").
			Options(options...).
			Value(&a.Multiple)
	default:
		return huh.NewInput().
			Title(field.Label()).
			Placeholder(placeholder(field)).
			Value(&a.Text)
	}
}

func placeholder(field searchbar.Field) string {
	switch field.(type) {
	case searchbar.TimeInput:
		return "HH:MM"
	case searchbar.DateInput:
		return "YYYY-MM-DD"
	case searchbar.LocationInput:
		return "NSR:StopPlace:337 or 59.91,10.75"
	case searchbar.NumTripPatternsInput:
		return "12"
	default:
		return ""
	}
}

func PrintTrip(output io.Writer, trip *planner.Trip, clock searchbar.Clock) {
	if trip == nil || len(trip.TripPatterns) == 0 {
		fmt.Fprintln(output, "No trip patterns found")
		return
	}

	location := clock.Location
	if location == nil {
		location = time.Local
	}

	for i, pattern := range trip.TripPatterns {
		fmt.Fprintf(output, "%d. %s -> %s (%s)\n",
			i+1,
			pattern.ExpectedStartTime.In(location).Format("15:04"),
			pattern.ExpectedEndTime.In(location).Format("15:04"),
			pattern.TravelTime(),
		)

		for _, leg := range pattern.Legs {
			line := ""
			if leg.Line != nil {
				line = " " + leg.Line.PublicCode
			}
			fmt.Fprintf(output, "   %s%s %s -> %s\n", leg.Mode, line, leg.FromPlace.Name, leg.ToPlace.Name)
		}
	}
}
