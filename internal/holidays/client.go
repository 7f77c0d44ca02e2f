// Package holidays is a thin client for the Nager.Date public-holiday API.
// Failures are surfaced to the caller as-is: no retry, no cached fallback.
package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when the upstream has no data for the
	// requested year and country.
	ErrNotFound = errors.New("holidays not found")
	// ErrUpstreamUnavailable is returned when the holiday source cannot
	// be reached or answers with an unexpected status.
	ErrUpstreamUnavailable = errors.New("holiday source unavailable")
)

// Holiday mirrors the Nager.Date PublicHoliday shape.
type Holiday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	LaunchYear  *int     `json:"launchYear"`
	Types       []string `json:"types"`
}

// Client fetches public holidays for a fixed country.
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	log         *zerolog.Logger
}

// NewClient creates a new holiday client
func NewClient(baseURL, countryCode string, timeout time.Duration, log *zerolog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log,
	}
}

// CurrentYear fetches the public holidays for the current year.
func (c *Client) CurrentYear(ctx context.Context) ([]Holiday, error) {
	return c.Year(ctx, time.Now().Year())
}

// Year fetches the public holidays for one year.
func (c *Client) Year(ctx context.Context, year int) ([]Holiday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Int("year", year).Msg("Holiday lookup failed")
		return nil, ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.log.Error().Int("status", resp.StatusCode).Int("year", year).Msg("Unexpected holiday source status")
		return nil, ErrUpstreamUnavailable
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		c.log.Error().Err(err).Msg("Failed to decode holiday response")
		return nil, ErrUpstreamUnavailable
	}

	return holidays, nil
}
