package client

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"twiga-dash/internal/metrics"
	"twiga-dash/pkg/models"
)

// EarthRanger ISO 8601 format, seconds precision with Z suffix
const RangerTimeFormat = "2006-01-02T15:04:05Z"

const eventsPageSize = "200"

// GetEvents fetches all events of one category within [since, until],
// following pagination links until the last page. Full event details are
// requested; notes are not.
func (c *RangerClient) GetEvents(category string, since, until time.Time) ([]models.Event, error) {
	metrics.FetchTotal.WithLabelValues("events").Inc()

	filter := fmt.Sprintf(`{"date_range":{"lower":"%s","upper":"%s"}}`,
		since.UTC().Format(RangerTimeFormat),
		until.UTC().Format(RangerTimeFormat))

	var all []models.Event
	next := ""

	for {
		var respData models.EventListResponse
		var resp *resty.Response
		var err error

		req := c.HTTP.R().SetResult(&respData)

		if next == "" {
			resp, err = req.
				SetQueryParam("event_category", category).
				SetQueryParam("filter", filter).
				SetQueryParam("include_details", "true").
				SetQueryParam("include_notes", "false").
				SetQueryParam("page_size", eventsPageSize).
				Get("/api/v1.0/activity/events")
		} else {
			// "next" is an absolute URL carrying the original query
			resp, err = req.Get(next)
		}

		if err != nil {
			metrics.FetchErrors.WithLabelValues("events").Inc()
			return nil, err
		}

		if resp.IsError() {
			metrics.FetchErrors.WithLabelValues("events").Inc()
			return nil, fmt.Errorf("failed to get %s events: %s", category, resp.String())
		}

		all = append(all, respData.Data.Results...)

		if respData.Data.Next == "" {
			return all, nil
		}
		next = respData.Data.Next
	}
}
