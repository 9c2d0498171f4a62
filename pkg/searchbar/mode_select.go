package searchbar

import (
	"strings"

	"github.com/rohanthewiz/element"
	"github.com/travigo/tripsearch/pkg/tripquery"
	"github.com/travigo/tripsearch/pkg/util"
)

// StreetModeSelect picks one street mode, the empty option leaves it to the planner default
type StreetModeSelect struct {
	InputID    string
	InputLabel string

	Current  *tripquery.StreetMode
	SetValue func(*tripquery.StreetMode)
}

func (s StreetModeSelect) ID() string    { return s.InputID }
func (s StreetModeSelect) Label() string { return s.InputLabel }

func (s StreetModeSelect) Value() string {
	if s.Current == nil {
		return ""
	}
	return string(*s.Current)
}

func (s StreetModeSelect) OnChange(raw string) {
	mode, err := tripquery.ParseStreetMode(raw)
	if err != nil {
		s.SetValue(nil)
		return
	}
	s.SetValue(&mode)
}

func (s StreetModeSelect) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, s.InputID, s.InputLabel),
		b.Select("class", selectClass, "id", s.InputID, "name", s.InputID).R(
			s.renderOptions(b),
		),
	)
	return
}

func (s StreetModeSelect) renderOptions(b *element.Builder) (x any) {
	current := s.Value()

	b.Option(optionAttributes("", current == "")...).T("Not selected")
	for _, mode := range tripquery.StreetModes {
		b.Option(optionAttributes(string(mode), current == string(mode))...).T(mode.Label())
	}
	return
}

type AccessSelect struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (a AccessSelect) input() StreetModeSelect {
	return StreetModeSelect{
		InputID:    "accessSelect",
		InputLabel: "Access",
		Current:    currentModes(a.TripQueryVariables).AccessMode,
		SetValue: func(mode *tripquery.StreetMode) {
			a.SetTripQueryVariables(a.TripQueryVariables.WithAccessMode(mode))
		},
	}
}

func (a AccessSelect) ID() string                    { return a.input().ID() }
func (a AccessSelect) Label() string                 { return a.input().Label() }
func (a AccessSelect) Value() string                 { return a.input().Value() }
func (a AccessSelect) OnChange(raw string)           { a.input().OnChange(raw) }
func (a AccessSelect) Render(b *element.Builder) any { return a.input().Render(b) }

type EgressSelect struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (e EgressSelect) input() StreetModeSelect {
	return StreetModeSelect{
		InputID:    "egressSelect",
		InputLabel: "Egress",
		Current:    currentModes(e.TripQueryVariables).EgressMode,
		SetValue: func(mode *tripquery.StreetMode) {
			e.SetTripQueryVariables(e.TripQueryVariables.WithEgressMode(mode))
		},
	}
}

func (e EgressSelect) ID() string                    { return e.input().ID() }
func (e EgressSelect) Label() string                 { return e.input().Label() }
func (e EgressSelect) Value() string                 { return e.input().Value() }
func (e EgressSelect) OnChange(raw string)           { e.input().OnChange(raw) }
func (e EgressSelect) Render(b *element.Builder) any { return e.input().Render(b) }

type DirectModeSelect struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (d DirectModeSelect) input() StreetModeSelect {
	return StreetModeSelect{
		InputID:    "directModeSelect",
		InputLabel: "Direct mode",
		Current:    currentModes(d.TripQueryVariables).DirectMode,
		SetValue: func(mode *tripquery.StreetMode) {
			d.SetTripQueryVariables(d.TripQueryVariables.WithDirectMode(mode))
		},
	}
}

func (d DirectModeSelect) ID() string                    { return d.input().ID() }
func (d DirectModeSelect) Label() string                 { return d.input().Label() }
func (d DirectModeSelect) Value() string                 { return d.input().Value() }
func (d DirectModeSelect) OnChange(raw string)           { d.input().OnChange(raw) }
func (d DirectModeSelect) Render(b *element.Builder) any { return d.input().Render(b) }

// TransitModeSelect is a multi select, change events carry the selection comma separated
type TransitModeSelect struct {
	TripQueryVariables    tripquery.TripQueryVariables
	SetTripQueryVariables SetTripQueryVariables
}

func (t TransitModeSelect) ID() string    { return "transitModeSelect" }
func (t TransitModeSelect) Label() string { return "Transit" }

func (t TransitModeSelect) Value() string {
	var selected []string
	for _, mode := range t.TripQueryVariables.SelectedTransportModes() {
		selected = append(selected, string(mode))
	}
	return strings.Join(selected, ",")
}

// OnChange drops unknown modes, an empty selection means every transit mode
func (t TransitModeSelect) OnChange(raw string) {
	t.SetTripQueryVariables(t.TripQueryVariables.WithTransportModes(ParseTransportModes(raw)))
}

func ParseTransportModes(raw string) []tripquery.TransportMode {
	var modes []tripquery.TransportMode

	for _, value := range strings.Split(raw, ",") {
		mode, err := tripquery.ParseTransportMode(value)
		if err != nil {
			continue
		}
		modes = append(modes, mode)
	}

	return util.RemoveDuplicates(modes, nil)
}

func (t TransitModeSelect) Render(b *element.Builder) (x any) {
	b.DivClass(fieldClass).R(
		renderLabel(b, t.ID(), t.Label()),
		b.Select("class", selectClass, "id", t.ID(), "name", t.ID(), "multiple", "multiple").R(
			t.renderOptions(b),
		),
	)
	return
}

func (t TransitModeSelect) renderOptions(b *element.Builder) (x any) {
	for _, mode := range tripquery.TransportModeList {
		b.Option(optionAttributes(string(mode), t.TripQueryVariables.HasTransportMode(mode))...).T(mode.Label())
	}
	return
}

func currentModes(variables tripquery.TripQueryVariables) tripquery.Modes {
	if variables.Modes == nil {
		return tripquery.Modes{}
	}
	return *variables.Modes
}
