package tripquery

import (
	"errors"
	"strings"
)

var ErrUnknownMode = errors.New("unknown mode")

// StreetMode is the Transmodel street mode used for access, egress and direct legs
type StreetMode string

const (
	StreetModeFoot          StreetMode = "foot"
	StreetModeBicycle       StreetMode = "bicycle"
	StreetModeBikePark      StreetMode = "bike_park"
	StreetModeBikeRental    StreetMode = "bike_rental"
	StreetModeScooterRental StreetMode = "scooter_rental"
	StreetModeCar           StreetMode = "car"
	StreetModeCarPark       StreetMode = "car_park"
	StreetModeCarPickup     StreetMode = "car_pickup"
	StreetModeCarRental     StreetMode = "car_rental"
	StreetModeFlexible      StreetMode = "flexible"
)

var StreetModes = []StreetMode{
	StreetModeFoot,
	StreetModeBicycle,
	StreetModeBikePark,
	StreetModeBikeRental,
	StreetModeScooterRental,
	StreetModeCar,
	StreetModeCarPark,
	StreetModeCarPickup,
	StreetModeCarRental,
	StreetModeFlexible,
}

func ParseStreetMode(value string) (StreetMode, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	for _, mode := range StreetModes {
		if string(mode) == value {
			return mode, nil
		}
	}

	return "", ErrUnknownMode
}

// Label is the human readable form shown in selects
func (m StreetMode) Label() string {
	return humanise(string(m))
}

type TransportMode string

const (
	TransportModeAir        TransportMode = "air"
	TransportModeBus        TransportMode = "bus"
	TransportModeCableway   TransportMode = "cableway"
	TransportModeCoach      TransportMode = "coach"
	TransportModeFunicular  TransportMode = "funicular"
	TransportModeLift       TransportMode = "lift"
	TransportModeMetro      TransportMode = "metro"
	TransportModeMonorail   TransportMode = "monorail"
	TransportModeRail       TransportMode = "rail"
	TransportModeTaxi       TransportMode = "taxi"
	TransportModeTram       TransportMode = "tram"
	TransportModeTrolleybus TransportMode = "trolleybus"
	TransportModeWater      TransportMode = "water"
	TransportModeUnknown    TransportMode = "unknown"
)

var TransportModeList = []TransportMode{
	TransportModeAir,
	TransportModeBus,
	TransportModeCableway,
	TransportModeCoach,
	TransportModeFunicular,
	TransportModeLift,
	TransportModeMetro,
	TransportModeMonorail,
	TransportModeRail,
	TransportModeTaxi,
	TransportModeTram,
	TransportModeTrolleybus,
	TransportModeWater,
	TransportModeUnknown,
}

func ParseTransportMode(value string) (TransportMode, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	for _, mode := range TransportModeList {
		if string(mode) == value {
			return mode, nil
		}
	}

	return "", ErrUnknownMode
}

func (m TransportMode) Label() string {
	return humanise(string(m))
}

// TransportModes is one entry of the transportModes filter
type TransportModes struct {
	TransportMode TransportMode `json:"transportMode" groups:"basic"`
}

type Modes struct {
	AccessMode     *StreetMode      `json:"accessMode,omitempty" groups:"basic"`
	EgressMode     *StreetMode      `json:"egressMode,omitempty" groups:"basic"`
	DirectMode     *StreetMode      `json:"directMode,omitempty" groups:"basic"`
	TransportModes []TransportModes `json:"transportModes,omitempty" groups:"basic"`
}

func (m *Modes) IsEmpty() bool {
	return m == nil || (m.AccessMode == nil && m.EgressMode == nil && m.DirectMode == nil && len(m.TransportModes) == 0)
}

func humanise(value string) string {
	words := strings.Split(value, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
