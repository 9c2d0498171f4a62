package terminal

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

type fakePlanner struct {
	calls int
	trip  *planner.Trip
}

func (f *fakePlanner) Trip(context.Context, tripquery.TripQueryVariables) (*planner.Trip, error) {
	f.calls++
	return f.trip, nil
}

func TestApplyKeepsEveryAnswer(t *testing.T) {
	form := &Form{Clock: searchbar.Clock{Location: time.UTC, Now: func() time.Time {
		return time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	}}}

	answers := []*Answer{
		{ID: "fromInputField", Text: "NSR:StopPlace:337"},
		{ID: "toInputField", Text: "59.91,10.75"},
		{ID: "departureArrivalSelect", Text: "arrival"},
		{ID: "timeInput", Text: "09:30"},
		{ID: "numTripPatternsInput", Text: "-4"},
		{ID: "searchWindowInput", Text: "90"},
		{ID: "accessSelect", Text: "bicycle"},
		{ID: "transitModeSelect", IsMulti: true, Multiple: []string{"rail", "tram"}},
	}

	initial := tripquery.TripQueryVariables{NumTripPatterns: tripquery.Int(3)}

	variables, err := Apply(form.searchBar, initial, answers)
	require.NoError(t, err)

	assert.Equal(t, "NSR:StopPlace:337", variables.From.Place)
	assert.Equal(t, 10.75, variables.To.Coordinates.Longitude)
	assert.True(t, variables.ArriveBy)
	assert.Equal(t, "2024-06-03T09:30:00Z", variables.DateTime.Format(time.RFC3339))
	assert.Nil(t, variables.NumTripPatterns)
	assert.Equal(t, 90, *variables.SearchWindow)
	assert.Equal(t, tripquery.StreetModeBicycle, *variables.Modes.AccessMode)
	assert.Equal(t, []tripquery.TransportMode{tripquery.TransportModeRail, tripquery.TransportModeTram}, variables.SelectedTransportModes())

	assert.Equal(t, 3, *initial.NumTripPatterns)
}

func TestApplyLeavesUntouchedFields(t *testing.T) {
	form := &Form{Clock: searchbar.Clock{Location: time.UTC, Now: func() time.Time {
		return time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	}}}

	dateTime := time.Date(2024, 6, 4, 7, 45, 0, 0, time.UTC)
	initial := tripquery.TripQueryVariables{
		From:            &tripquery.Location{Name: "Oslo S", Place: "NSR:StopPlace:337"},
		To:              &tripquery.Location{Name: "Bergen", Coordinates: &tripquery.Coordinates{Latitude: 60.39, Longitude: 5.32}},
		DateTime:        &dateTime,
		NumTripPatterns: tripquery.Int(4),
	}.WithTransportModes([]tripquery.TransportMode{tripquery.TransportModeRail})

	answers := seedAnswers(form.searchBar(initial, nil, nil))
	for _, a := range answers {
		if a.ID == "searchWindowInput" {
			a.Text = "45"
		}
	}

	variables, err := Apply(form.searchBar, initial, answers)
	require.NoError(t, err)

	assert.Equal(t, *initial.From, *variables.From)
	assert.Equal(t, "Bergen", variables.To.Name)
	require.NotNil(t, variables.To.Coordinates)
	assert.Equal(t, 5.32, variables.To.Coordinates.Longitude)
	assert.Equal(t, dateTime, *variables.DateTime)
	assert.Equal(t, 4, *variables.NumTripPatterns)
	assert.Equal(t, 45, *variables.SearchWindow)
	assert.Equal(t, []tripquery.TransportMode{tripquery.TransportModeRail}, variables.SelectedTransportModes())
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var received context.Context
	previous := runForm
	runForm = func(ctx context.Context, _ *huh.Form) error {
		received = ctx
		return ctx.Err()
	}
	t.Cleanup(func() { runForm = previous })

	fake := &fakePlanner{}
	form := &Form{Planner: fake, Clock: searchbar.Clock{Location: time.UTC}, Output: &bytes.Buffer{}}

	initial := tripquery.TripQueryVariables{NumTripPatterns: tripquery.Int(2)}
	variables, err := form.Run(ctx, initial)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ctx, received)
	assert.Equal(t, initial, variables)
	assert.Zero(t, fake.calls)
}

func TestApplyUnknownField(t *testing.T) {
	form := &Form{}

	_, err := Apply(form.searchBar, tripquery.TripQueryVariables{}, []*Answer{{ID: "nope"}})
	assert.ErrorIs(t, err, searchbar.ErrUnknownField)
}

func TestRoutePrintsTrip(t *testing.T) {
	output := &bytes.Buffer{}
	fake := &fakePlanner{trip: &planner.Trip{TripPatterns: []planner.TripPattern{
		{
			ExpectedStartTime: time.Date(2024, 6, 3, 9, 20, 0, 0, time.UTC),
			ExpectedEndTime:   time.Date(2024, 6, 3, 9, 47, 0, 0, time.UTC),
			Duration:          1620,
			Legs: []planner.Leg{
				{Mode: "rail", FromPlace: planner.Place{Name: "Oslo S"}, ToPlace: planner.Place{Name: "Lillestrøm"}, Line: &planner.Line{PublicCode: "R10"}},
			},
		},
	}}}

	form := &Form{Planner: fake, Clock: searchbar.Clock{Location: time.UTC}, Output: output}

	require.NoError(t, form.Route(context.Background(), tripquery.TripQueryVariables{}))
	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, output.String(), "1. 09:20 -> 09:47 (27m0s)")
	assert.Contains(t, output.String(), "rail R10 Oslo S -> Lillestrøm")
}

func TestPrintTripEmpty(t *testing.T) {
	output := &bytes.Buffer{}
	PrintTrip(output, &planner.Trip{}, searchbar.Clock{})
	assert.Equal(t, "No trip patterns found\n", output.String())
}
