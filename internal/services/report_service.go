package services

import (
	"context"
	"net/url"

	"expense-console/internal/apiclient"
	"expense-console/internal/models"
)

type reportService struct {
	client *apiclient.Client
}

// NewReportService creates a ReportServiceInterface backed by the API client
func NewReportService(client *apiclient.Client) ReportServiceInterface {
	return &reportService{client: client}
}

// GetSummary fetches the server-computed summary. Unset filters are omitted
// from the query entirely; the backend treats an empty string as a real value.
func (s *reportService) GetSummary(ctx context.Context, filters models.SummaryFilters) (*models.Summary, error) {
	query := url.Values{}
	if filters.CategoryID != "" {
		query.Set("categoryId", filters.CategoryID)
	}
	if filters.Month != "" {
		query.Set("month", filters.Month)
	}

	resp, err := s.client.Get(ctx, "/expenses/summary", query)
	if err != nil {
		return nil, err
	}

	var summary models.Summary
	if err := resp.DecodeJSON(&summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
