/*
Package holiday provides the national-holiday source for the roster engine.

PURPOSE:
  Looks up Brazilian national holidays per year from BrasilAPI
  (https://brasilapi.com.br/api/feriados/v1/{year}) and reshapes them into
  the DD/MM/YYYY keys the builder classifies days with.

FAILURE MODE:
  Network and format failures surface as roster.HolidayLookupError. The
  generator recovers by degrading to an empty holiday set; a failed lookup
  must never block schedule generation.
*/
package holiday

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/escala/roster-engine/roster"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://brasilapi.com.br"
	lookupTimeout  = 10 * time.Second
	maxRetries     = 2
	retryWaitTime  = 500 * time.Millisecond
)

// Client fetches national holidays from BrasilAPI.
type Client struct {
	rest *resty.Client
}

// NewClient creates a client against the public BrasilAPI endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint (tests).
func NewClientWithBaseURL(baseURL string) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(lookupTimeout).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(retryWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			code := r.StatusCode()
			return code == 429 || code >= 500
		})
	return &Client{rest: rest}
}

// apiHoliday is the BrasilAPI wire shape: ISO date plus name.
type apiHoliday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// Holidays returns the year's national holidays, dated as DD/MM/YYYY.
func (c *Client) Holidays(ctx context.Context, year int) ([]roster.Holiday, error) {
	var payload []apiHoliday
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/api/feriados/v1/%d", year))
	if err != nil {
		return nil, &roster.HolidayLookupError{Year: year, Err: err}
	}
	if resp.IsError() {
		return nil, &roster.HolidayLookupError{
			Year: year,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	out := make([]roster.Holiday, 0, len(payload))
	for _, h := range payload {
		key, err := toDayKey(h.Date)
		if err != nil {
			return nil, &roster.HolidayLookupError{Year: year, Err: err}
		}
		out = append(out, roster.Holiday{Date: key, Name: h.Name})
	}
	return out, nil
}

// toDayKey reshapes YYYY-MM-DD into the DD/MM/YYYY day key, re-padding the
// fields so a non-padded upstream date still matches the builder's keys.
func toDayKey(isoDate string) (string, error) {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed holiday date %q", isoDate)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil ||
		month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("malformed holiday date %q", isoDate)
	}
	return roster.DayKey(day, time.Month(month), year), nil
}
