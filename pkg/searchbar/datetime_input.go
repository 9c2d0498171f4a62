package searchbar

import (
	"strings"
	"time"

	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

const (
	timeInputLayout = "15:04"
	dateInputLayout = "2006-01-02"
)

// Clock supplies the zone the form is shown in and the current time for unset dates
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.location())
	}
	return c.Now().In(c.location())
}

func (c Clock) format(dateTime *time.Time, layout string) string {
	if dateTime == nil {
		return ""
	}
	return dateTime.In(c.location()).Format(layout)
}

type TimeInput struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
	Clock                 Clock
}

func (t TimeInput) ID() string    { return "timeInput" }
func (t TimeInput) Label() string { return "Time" }

func (t TimeInput) Value() string {
	return t.Clock.format(t.TripQueryVariables.DateTime, timeInputLayout)
}

// OnChange ignores text that is not a HH:MM time, the browser only emits complete values
func (t TimeInput) OnChange(raw string) {
	clock, err := time.ParseInLocation(timeInputLayout, strings.TrimSpace(raw), t.Clock.location())
	if err != nil {
		return
	}

	t.SetTripQueryVariables(t.TripQueryVariables.WithTimeOfDay(clock, t.Clock.now()))
}

func (t TimeInput) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, t.ID(), t.Label()),
		b.Input("type", "time", "class", controlClass, "id", t.ID(), "name", t.ID(), "value", t.Value()),
	)
	return
}

type DateInput struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
	Clock                 Clock
}

func (d DateInput) ID() string    { return "dateInput" }
func (d DateInput) Label() string { return "Date" }

func (d DateInput) Value() string {
	return d.Clock.format(d.TripQueryVariables.DateTime, dateInputLayout)
}

func (d DateInput) OnChange(raw string) {
	date, err := time.ParseInLocation(dateInputLayout, strings.TrimSpace(raw), d.Clock.location())
	if err != nil {
		return
	}

	d.SetTripQueryVariables(d.TripQueryVariables.WithDate(date, d.Clock.now()))
}

func (d DateInput) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, d.ID(), d.Label()),
		b.Input("type", "date", "class", controlClass, "id", d.ID(), "name", d.ID(), "value", d.Value()),
	)
	return
}
