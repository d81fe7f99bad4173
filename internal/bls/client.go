// Package bls talks to the Bureau of Labor Statistics public timeseries API.
package bls

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"laborstats/internal/config"
)

const statusSucceeded = "REQUEST_SUCCEEDED"

// StatusError is returned when the API answers with a non-200 HTTP status
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bls: request failed with status code %d", e.Code)
}

// APIError is returned when the payload status is not REQUEST_SUCCEEDED
type APIError struct {
	Status   string
	Messages []string
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("bls: request failed (%s): %s", e.Status, msg)
}

// Client issues batched multi-series queries
type Client struct {
	url    string
	client *resty.Client
}

// NewClient creates a client for the configured endpoint. No timeout or retry
// is set beyond the transport default.
func NewClient(cfg config.BLSConfig) *Client {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		url:    cfg.URL,
		client: client,
	}
}

type seriesRequest struct {
	SeriesID  []string `json:"seriesid"`
	StartYear string   `json:"startyear"`
	EndYear   string   `json:"endyear"`
}

// FetchSeries requests all seriesIDs over [startYear, endYear] in a single POST
func (c *Client) FetchSeries(ctx context.Context, seriesIDs []string, startYear, endYear int) (*Response, error) {
	log.Printf("Fetching data from BLS API for years %d-%d...", startYear, endYear)

	payload := seriesRequest{
		SeriesID:  seriesIDs,
		StartYear: strconv.Itoa(startYear),
		EndYear:   strconv.Itoa(endYear),
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("bls: request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{
			Code:   resp.StatusCode(),
			Status: resp.Status(),
			Body:   strings.TrimSpace(string(resp.Body())),
		}
	}

	var out Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("bls: malformed response: %w", err)
	}

	if out.Status != statusSucceeded {
		return nil, &APIError{Status: out.Status, Messages: out.Message}
	}

	log.Println("Data fetched successfully!")
	return &out, nil
}
