package tripquery

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/travigo/tripsearch/pkg/util"
	"golang.org/x/exp/slices"
)

// TripQueryVariables are the variables of the Transmodel trip query.
// Treat a value as immutable: every With method returns a new copy with a single field changed
// and never writes through the pointers it shares with the receiver.
type TripQueryVariables struct {
	From *Location `json:"from,omitempty" groups:"basic"`
	To   *Location `json:"to,omitempty" groups:"basic"`

	ArriveBy bool       `json:"arriveBy" groups:"basic"`
	DateTime *time.Time `json:"dateTime,omitempty" groups:"basic"`

	NumTripPatterns *int `json:"numTripPatterns,omitempty" groups:"basic"`
	// SearchWindow is in minutes
	SearchWindow *int `json:"searchWindow,omitempty" groups:"basic"`

	Modes *Modes `json:"modes,omitempty" groups:"basic"`
}

func (v TripQueryVariables) WithFrom(location *Location) TripQueryVariables {
	v.From = cloneLocation(location)
	return v
}

func (v TripQueryVariables) WithTo(location *Location) TripQueryVariables {
	v.To = cloneLocation(location)
	return v
}

func (v TripQueryVariables) WithArriveBy(arriveBy bool) TripQueryVariables {
	v.ArriveBy = arriveBy
	return v
}

func (v TripQueryVariables) WithDateTime(dateTime *time.Time) TripQueryVariables {
	if dateTime == nil {
		v.DateTime = nil
	} else {
		value := *dateTime
		v.DateTime = &value
	}
	return v
}

// WithTimeOfDay keeps the current date (or the date of now when unset) and replaces the clock time
func (v TripQueryVariables) WithTimeOfDay(clock time.Time, now time.Time) TripQueryVariables {
	date := now.In(clock.Location())
	if v.DateTime != nil {
		date = v.DateTime.In(clock.Location())
	}

	dateTime := util.TruncateToMinute(util.AddTimeToDate(date, clock))
	return v.WithDateTime(&dateTime)
}

// WithDate keeps the current clock time (or the time of now when unset) and replaces the date
func (v TripQueryVariables) WithDate(date time.Time, now time.Time) TripQueryVariables {
	clock := now.In(date.Location())
	if v.DateTime != nil {
		clock = v.DateTime.In(date.Location())
	}

	dateTime := util.TruncateToMinute(util.AddTimeToDate(date, clock))
	return v.WithDateTime(&dateTime)
}

func (v TripQueryVariables) WithNumTripPatterns(numTripPatterns *int) TripQueryVariables {
	v.NumTripPatterns = cloneInt(numTripPatterns)
	return v
}

func (v TripQueryVariables) WithSearchWindow(searchWindow *int) TripQueryVariables {
	v.SearchWindow = cloneInt(searchWindow)
	return v
}

func (v TripQueryVariables) WithAccessMode(mode *StreetMode) TripQueryVariables {
	modes := v.copyModes()
	modes.AccessMode = cloneStreetMode(mode)
	return v.withModes(modes)
}

func (v TripQueryVariables) WithEgressMode(mode *StreetMode) TripQueryVariables {
	modes := v.copyModes()
	modes.EgressMode = cloneStreetMode(mode)
	return v.withModes(modes)
}

func (v TripQueryVariables) WithDirectMode(mode *StreetMode) TripQueryVariables {
	modes := v.copyModes()
	modes.DirectMode = cloneStreetMode(mode)
	return v.withModes(modes)
}

// WithTransportModes replaces the transit filter, nil or empty means all transit modes
func (v TripQueryVariables) WithTransportModes(transportModes []TransportMode) TripQueryVariables {
	modes := v.copyModes()
	modes.TransportModes = nil
	for _, mode := range transportModes {
		modes.TransportModes = append(modes.TransportModes, TransportModes{TransportMode: mode})
	}
	return v.withModes(modes)
}

// SelectedTransportModes flattens the transit filter
func (v TripQueryVariables) SelectedTransportModes() []TransportMode {
	if v.Modes == nil {
		return nil
	}

	var selected []TransportMode
	for _, entry := range v.Modes.TransportModes {
		selected = append(selected, entry.TransportMode)
	}
	return selected
}

func (v TripQueryVariables) HasTransportMode(mode TransportMode) bool {
	return slices.Contains(v.SelectedTransportModes(), mode)
}

// copier only walks exported fields, time.Time has none and nil slices come back empty
var cloneConverters = []copier.TypeConverter{
	{
		SrcType: (*time.Time)(nil),
		DstType: (*time.Time)(nil),
		Fn: func(src interface{}) (interface{}, error) {
			value, _ := src.(*time.Time)
			if value == nil {
				return (*time.Time)(nil), nil
			}
			copied := *value
			return &copied, nil
		},
	},
	{
		SrcType: []TransportModes{},
		DstType: []TransportModes{},
		Fn: func(src interface{}) (interface{}, error) {
			value, _ := src.([]TransportModes)
			return slices.Clone(value), nil
		},
	},
}

// Clone returns a deep copy sharing no pointers with v
func (v TripQueryVariables) Clone() (TripQueryVariables, error) {
	var clone TripQueryVariables
	err := copier.CopyWithOption(&clone, &v, copier.Option{DeepCopy: true, Converters: cloneConverters})

	return clone, err
}

// copyModes is a shallow copy of the modes block, the pointers inside it are only ever replaced
func (v TripQueryVariables) copyModes() Modes {
	if v.Modes == nil {
		return Modes{}
	}
	modes := *v.Modes
	modes.TransportModes = slices.Clone(v.Modes.TransportModes)
	return modes
}

func (v TripQueryVariables) withModes(modes Modes) TripQueryVariables {
	if modes.IsEmpty() {
		v.Modes = nil
	} else {
		v.Modes = &modes
	}
	return v
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneStreetMode(mode *StreetMode) *StreetMode {
	if mode == nil {
		return nil
	}
	copied := *mode
	return &copied
}

func cloneLocation(location *Location) *Location {
	if location == nil {
		return nil
	}
	copied := *location
	if location.Coordinates != nil {
		coordinates := *location.Coordinates
		copied.Coordinates = &coordinates
	}
	return &copied
}

// Int is a helper for building optional integer fields
func Int(value int) *int {
	return &value
}

func Street(mode StreetMode) *StreetMode {
	return &mode
}
