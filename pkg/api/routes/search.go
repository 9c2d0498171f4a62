package routes

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/session"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

// Planner is the trip query backend the Route action calls
type Planner interface {
	Trip(ctx context.Context, variables tripquery.TripQueryVariables) (*planner.Trip, error)
}

type Search struct {
	Sessions *session.Manager
	Planner  Planner

	Clock                   searchbar.Clock
	DefaultVariables        tripquery.TripQueryVariables
	SearchWindowPlaceholder string
}

type sessionView struct {
	ID        string                       `json:"id" groups:"basic"`
	Variables tripquery.TripQueryVariables `json:"variables" groups:"basic"`
	Fields    []fieldView                  `json:"fields,omitempty" groups:"detailed"`
}

type fieldView struct {
	ID    string `json:"id" groups:"detailed"`
	Label string `json:"label" groups:"detailed"`
	Value string `json:"value" groups:"detailed"`
}

type fieldChange struct {
	Value string `json:"value" form:"value"`
}

func SearchRouter(router fiber.Router, search *Search) {
	router.Post("/sessions", search.createSession)
	router.Get("/sessions/:id", search.getSession)
	router.Get("/sessions/:id/form", search.getSessionForm)
	router.Post("/sessions/:id/fields/:field", search.changeField)
	router.Post("/sessions/:id/route", search.route)
}

func (s *Search) searchBar(variables tripquery.TripQueryVariables, set searchbar.SetTripQueryVariables, onRoute func()) searchbar.SearchBar {
	return searchbar.SearchBar{
		OnRoute:                 onRoute,
		TripQueryVariables:      variables,
		SetTripQueryVariables:   set,
		Clock:                   s.Clock,
		SearchWindowPlaceholder: s.SearchWindowPlaceholder,
	}
}

func (s *Search) createSession(c *fiber.Ctx) error {
	id, err := s.Sessions.Create(c.UserContext(), s.DefaultVariables)
	if err != nil {
		return sendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return s.sendSession(c, id, s.DefaultVariables)
}

func (s *Search) getSession(c *fiber.Ctx) error {
	id := c.Params("id")

	variables, err := s.Sessions.Get(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}

	return s.sendSession(c, id, variables)
}

func (s *Search) getSessionForm(c *fiber.Ctx) error {
	variables, err := s.Sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	c.Type("html")
	return c.SendString(s.searchBar(variables, nil, nil).HTML())
}

func (s *Search) changeField(c *fiber.Ctx) error {
	id := c.Params("id")
	fieldID := c.Params("field")

	var change fieldChange
	if err := c.BodyParser(&change); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body should contain a value",
		})
	}

	variables, err := s.Sessions.Update(c.UserContext(), id, func(current tripquery.TripQueryVariables, set func(tripquery.TripQueryVariables)) error {
		return s.searchBar(current, set, nil).Change(fieldID, change.Value)
	})
	if err != nil {
		return sendError(c, err)
	}

	return s.sendSession(c, id, variables)
}

func (s *Search) route(c *fiber.Ctx) error {
	id := c.Params("id")

	variables, err := s.Sessions.Get(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}

	var trip *planner.Trip
	var routeErr error

	s.searchBar(variables, nil, func() {
		trip, routeErr = s.Planner.Trip(c.UserContext(), variables)
	}).Route()

	if routeErr != nil {
		log.Warn().Err(routeErr).Str("session", id).Msg("Trip query failed")
		return sendError(c, routeErr)
	}

	return c.JSON(trip)
}

func (s *Search) sendSession(c *fiber.Ctx, id string, variables tripquery.TripQueryVariables) error {
	view := sessionView{
		ID:        id,
		Variables: variables,
	}

	groups := []string{"basic"}
	if detailed, _ := strconv.ParseBool(c.Query("detailed")); detailed {
		groups = append(groups, "detailed")

		for _, field := range s.searchBar(variables, nil, nil).Fields() {
			view.Fields = append(view.Fields, fieldView{ID: field.ID(), Label: field.Label(), Value: field.Value()})
		}
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, view)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce Session",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, searchbar.ErrUnknownField), errors.Is(err, planner.ErrMissingLocation):
		c.SendStatus(fiber.StatusBadRequest)
	case errors.Is(err, planner.ErrPlanner):
		c.SendStatus(fiber.StatusBadGateway)
	default:
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
