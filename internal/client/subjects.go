package client

import (
	"fmt"

	"twiga-dash/internal/metrics"
	"twiga-dash/pkg/models"
)

// GetSubjects fetches every subject belonging to one subject group.
func (c *RangerClient) GetSubjects(groupID string) ([]models.Subject, error) {
	metrics.FetchTotal.WithLabelValues("subjects").Inc()

	var respData models.SubjectListResponse

	resp, err := c.HTTP.R().
		SetQueryParam("subject_group", groupID).
		SetQueryParam("include_inactive", "true").
		SetResult(&respData).
		Get("/api/v1.0/subjects")

	if err != nil {
		metrics.FetchErrors.WithLabelValues("subjects").Inc()
		return nil, err
	}

	if resp.IsError() {
		metrics.FetchErrors.WithLabelValues("subjects").Inc()
		return nil, fmt.Errorf("failed to get subjects for group %s: %s", groupID, resp.String())
	}

	return respData.Data, nil
}
