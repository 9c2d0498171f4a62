package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/config"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

var (
	ErrMissingLocation = errors.New("trip query needs both from and to")
	ErrPlanner         = errors.New("planner request failed")
)

// Client runs trip queries against a Transmodel GraphQL endpoint
type Client struct {
	Endpoint   string
	ClientName string

	HTTPClient      *http.Client
	RetryMaxElapsed time.Duration
}

func NewClient(plannerConfig config.PlannerConfig) *Client {
	return &Client{
		Endpoint:        plannerConfig.Endpoint,
		ClientName:      plannerConfig.ClientName,
		HTTPClient:      &http.Client{Timeout: plannerConfig.Timeout},
		RetryMaxElapsed: plannerConfig.RetryMaxElapsed,
	}
}

// Trip sends the variables as they are, server errors and network failures are retried
func (c *Client) Trip(ctx context.Context, variables tripquery.TripQueryVariables) (*Trip, error) {
	if variables.From == nil || variables.To == nil {
		return nil, ErrMissingLocation
	}

	body, err := json.Marshal(graphQLRequest{
		Query:         tripQuery,
		OperationName: "trip",
		Variables:     variables,
	})
	if err != nil {
		return nil, err
	}

	var retryBackoff backoff.BackOff = &backoff.StopBackOff{}
	if c.RetryMaxElapsed > 0 {
		exponential := backoff.NewExponentialBackOff()
		exponential.InitialInterval = 100 * time.Millisecond
		exponential.MaxElapsedTime = c.RetryMaxElapsed
		retryBackoff = exponential
	}

	var trip *Trip
	attempt := 0

	err = backoff.Retry(func() error {
		attempt++

		trip, err = c.send(ctx, body)
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Str("endpoint", c.Endpoint).Msg("Trip query attempt failed")
		}
		return err
	}, backoff.WithContext(retryBackoff, ctx))

	if err != nil {
		return nil, err
	}

	return trip, nil
}

func (c *Client) send(ctx context.Context, body []byte) (*Trip, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.ClientName != "" {
		req.Header.Set("ET-Client-Name", c.ClientName)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanner, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrPlanner, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrPlanner, resp.StatusCode)
	} else if resp.StatusCode >= http.StatusBadRequest {
		return nil, backoff.Permanent(fmt.Errorf("%w: status %d", ErrPlanner, resp.StatusCode))
	}

	var response graphQLResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: decoding response: %w", ErrPlanner, err))
	}

	if len(response.Errors) > 0 {
		var messages []string
		for _, graphQLErr := range response.Errors {
			messages = append(messages, graphQLErr.Message)
		}
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrPlanner, strings.Join(messages, "; ")))
	}

	if response.Data == nil || response.Data.Trip == nil {
		return &Trip{}, nil
	}

	return response.Data.Trip, nil
}
