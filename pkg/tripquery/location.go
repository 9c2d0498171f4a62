package tripquery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Coordinates struct {
	Latitude  float64 `json:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" groups:"basic"`
}

// Location is either a place reference (eg. NSR:StopPlace:337) or a coordinate pair
type Location struct {
	Name        string       `json:"name,omitempty" groups:"basic"`
	Place       string       `json:"place,omitempty" groups:"basic"`
	Coordinates *Coordinates `json:"coordinates,omitempty" groups:"basic"`
}

// ParseLocation turns free text into a Location. Empty text returns nil.
func ParseLocation(value string) *Location {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if coordinates, err := ParseCoordinates(value); err == nil {
		return &Location{Coordinates: coordinates}
	}

	return &Location{Place: value}
}

func ParseCoordinates(value string) (*Coordinates, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, ErrInvalidCoordinates
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude: %w", ErrInvalidCoordinates, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude: %w", ErrInvalidCoordinates, err)
	}

	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, ErrInvalidCoordinates
	}

	return &Coordinates{Latitude: latitude, Longitude: longitude}, nil
}

// String is the text shown in the location input
func (l *Location) String() string {
	if l == nil {
		return ""
	}

	switch {
	case l.Name != "":
		return l.Name
	case l.Place != "":
		return l.Place
	case l.Coordinates != nil:
		return fmt.Sprintf("%s, %s",
			strconv.FormatFloat(l.Coordinates.Latitude, 'f', -1, 64),
			strconv.FormatFloat(l.Coordinates.Longitude, 'f', -1, 64),
		)
	default:
		return ""
	}
}
