package planner

import (
	"time"

	"github.com/travigo/tripsearch/pkg/tripquery"
)

const tripQuery = `query trip(
  $from: Location!
  $to: Location!
  $arriveBy: Boolean
  $dateTime: DateTime
  $numTripPatterns: Int
  $searchWindow: Int
  $modes: Modes
) {
  trip(
    from: $from
    to: $to
    arriveBy: $arriveBy
    dateTime: $dateTime
    numTripPatterns: $numTripPatterns
    searchWindow: $searchWindow
    modes: $modes
  ) {
    previousPageCursor
    nextPageCursor
    tripPatterns {
      aimedStartTime
      aimedEndTime
      expectedStartTime
      expectedEndTime
      duration
      distance
      legs {
        mode
        aimedStartTime
        aimedEndTime
        distance
        fromPlace {
          name
        }
        toPlace {
          name
        }
        line {
          publicCode
          name
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query         string                       `json:"query"`
	OperationName string                       `json:"operationName"`
	Variables     tripquery.TripQueryVariables `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data *struct {
		Trip *Trip `json:"trip"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type Trip struct {
	PreviousPageCursor string        `json:"previousPageCursor"`
	NextPageCursor     string        `json:"nextPageCursor"`
	TripPatterns       []TripPattern `json:"tripPatterns"`
}

type TripPattern struct {
	AimedStartTime    time.Time `json:"aimedStartTime"`
	AimedEndTime      time.Time `json:"aimedEndTime"`
	ExpectedStartTime time.Time `json:"expectedStartTime"`
	ExpectedEndTime   time.Time `json:"expectedEndTime"`
	// Duration is in seconds
	Duration int64   `json:"duration"`
	Distance float64 `json:"distance"`

	Legs []Leg `json:"legs"`
}

type Leg struct {
	Mode           string    `json:"mode"`
	AimedStartTime time.Time `json:"aimedStartTime"`
	AimedEndTime   time.Time `json:"aimedEndTime"`
	Distance       float64   `json:"distance"`

	FromPlace Place `json:"fromPlace"`
	ToPlace   Place `json:"toPlace"`
	Line      *Line `json:"line"`
}

type Place struct {
	Name string `json:"name"`
}

type Line struct {
	PublicCode string `json:"publicCode"`
	Name       string `json:"name"`
}

func (p TripPattern) TravelTime() time.Duration {
	return time.Duration(p.Duration) * time.Second
}
