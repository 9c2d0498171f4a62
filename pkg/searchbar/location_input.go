package searchbar

import (
	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

// LocationInput only sees its own location and a setter for it
type LocationInput struct {
	InputID    string
	InputLabel string

	Location    *tripquery.Location
	SetLocation func(*tripquery.Location)
}

func (l LocationInput) ID() string    { return l.InputID }
func (l LocationInput) Label() string { return l.InputLabel }
func (l LocationInput) Value() string { return l.Location.String() }

// OnChange keeps the current location when the text still reads as it is displayed, so a
// named place is not reparsed into a bare place id
func (l LocationInput) OnChange(raw string) {
	if l.Location != nil && raw == l.Value() {
		l.SetLocation(l.Location)
		return
	}

	l.SetLocation(tripquery.ParseLocation(raw))
}

func (l LocationInput) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, l.InputID, l.InputLabel),
		b.Input("type", "text", "class", controlClass, "id", l.InputID, "name", l.InputID,
			"placeholder", "[Click in map]", "value", escape(l.Value())),
	)
	return
}
