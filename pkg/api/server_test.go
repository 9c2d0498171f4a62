package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tripsearch/pkg/api/routes"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/session"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

type fakePlanner struct {
	calls []tripquery.TripQueryVariables
	trip  *planner.Trip
	err   error
}

func (f *fakePlanner) Trip(_ context.Context, variables tripquery.TripQueryVariables) (*planner.Trip, error) {
	f.calls = append(f.calls, variables)
	return f.trip, f.err
}

type sessionResponse struct {
	ID        string                       `json:"id"`
	Variables tripquery.TripQueryVariables `json:"variables"`
	Fields    []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"fields"`
	Error string `json:"error"`
}

func newTestApp(t *testing.T, fake *fakePlanner) *fiber.App {
	t.Helper()

	return NewApp(&routes.Search{
		Sessions:         session.NewManager(session.NewMemoryStore(time.Hour)),
		Planner:          fake,
		Clock:            searchbar.Clock{Location: time.UTC},
		DefaultVariables: tripquery.TripQueryVariables{NumTripPatterns: tripquery.Int(12)},
	})
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, responseBody
}

func decodeSession(t *testing.T, body []byte) sessionResponse {
	t.Helper()

	var decoded sessionResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func createSession(t *testing.T, app *fiber.App) string {
	resp, body := doRequest(t, app, http.MethodPost, "/search/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeSession(t, body)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestVersion(t *testing.T) {
	app := newTestApp(t, &fakePlanner{})

	resp, body := doRequest(t, app, http.MethodGet, "/search/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"version": "`+routes.Version+`"}`, string(body))
}

func TestCreateAndGetSession(t *testing.T) {
	app := newTestApp(t, &fakePlanner{})
	id := createSession(t, app)

	resp, body := doRequest(t, app, http.MethodGet, "/search/sessions/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fetched := decodeSession(t, body)
	require.NotNil(t, fetched.Variables.NumTripPatterns)
	assert.Equal(t, 12, *fetched.Variables.NumTripPatterns)
	assert.Empty(t, fetched.Fields)

	resp, body = doRequest(t, app, http.MethodGet, "/search/sessions/"+id+"?detailed=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	detailed := decodeSession(t, body)
	require.Len(t, detailed.Fields, 11)
	assert.Equal(t, "numTripPatternsInput", detailed.Fields[5].ID)
	assert.Equal(t, "12", detailed.Fields[5].Value)
}

func TestGetUnknownSession(t *testing.T) {
	app := newTestApp(t, &fakePlanner{})

	resp, body := doRequest(t, app, http.MethodGet, "/search/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeSession(t, body).Error, "not found")
}

func TestChangeField(t *testing.T) {
	app := newTestApp(t, &fakePlanner{})
	id := createSession(t, app)

	resp, body := doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/fields/fromInputField", `{"value": "NSR:StopPlace:337"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NSR:StopPlace:337", decodeSession(t, body).Variables.From.Place)

	resp, body = doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/fields/numTripPatternsInput", `{"value": "abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	changed := decodeSession(t, body)
	assert.Nil(t, changed.Variables.NumTripPatterns)
	assert.Equal(t, "NSR:StopPlace:337", changed.Variables.From.Place)

	resp, _ = doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/fields/colourInput", `{"value": "red"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/search/sessions/missing/fields/fromInputField", `{"value": "A"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionForm(t *testing.T) {
	app := newTestApp(t, &fakePlanner{})
	id := createSession(t, app)

	resp, body := doRequest(t, app, http.MethodGet, "/search/sessions/"+id+"/form", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "search-bar-container")
	assert.Contains(t, string(body), "routeButton")
}

func TestRoute(t *testing.T) {
	fake := &fakePlanner{trip: &planner.Trip{NextPageCursor: "next"}}
	app := newTestApp(t, fake)
	id := createSession(t, app)

	doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/fields/fromInputField", `{"value": "A"}`)
	doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/fields/toInputField", `{"value": "B"}`)

	resp, body := doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/route", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trip planner.Trip
	require.NoError(t, json.Unmarshal(body, &trip))
	assert.Equal(t, "next", trip.NextPageCursor)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "A", fake.calls[0].From.Place)
	assert.Equal(t, "B", fake.calls[0].To.Place)

	// routing leaves the session as it was
	_, body = doRequest(t, app, http.MethodGet, "/search/sessions/"+id, "")
	assert.Equal(t, 12, *decodeSession(t, body).Variables.NumTripPatterns)
}

func TestRoutePlannerErrors(t *testing.T) {
	fake := &fakePlanner{err: planner.ErrMissingLocation}
	app := newTestApp(t, fake)
	id := createSession(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/route", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fake.err = planner.ErrPlanner
	resp, _ = doRequest(t, app, http.MethodPost, "/search/sessions/"+id+"/route", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
