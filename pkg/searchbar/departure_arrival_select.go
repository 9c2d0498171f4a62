package searchbar

import (
	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

const (
	departureValue = "departure"
	arrivalValue   = "arrival"
)

type DepartureArrivalSelect struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (d DepartureArrivalSelect) ID() string    { return "departureArrivalSelect" }
func (d DepartureArrivalSelect) Label() string { return "Departure/Arrival" }

func (d DepartureArrivalSelect) Value() string {
	if d.TripQueryVariables.ArriveBy {
		return arrivalValue
	}
	return departureValue
}

func (d DepartureArrivalSelect) OnChange(raw string) {
	d.SetTripQueryVariables(d.TripQueryVariables.WithArriveBy(raw == arrivalValue))
}

func (d DepartureArrivalSelect) Render(b *element.Builder) (x any) {
	current := d.Value()

	b.DivClass(fieldClass).R(
		renderLabel(b, d.ID(), d.Label()),
		b.Select("class", selectClass, "id", d.ID(), "name", d.ID()).R(
			b.Option(optionAttributes(departureValue, current == departureValue)...).T("Departure"),
			b.Option(optionAttributes(arrivalValue, current == arrivalValue)...).T("Arrival"),
		),
	)
	return
}
