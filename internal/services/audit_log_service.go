package services

import (
	"context"
	"net/url"

	"expense-console/internal/apiclient"
	"expense-console/internal/models"
)

type auditLogService struct {
	client *apiclient.Client
}

// NewAuditLogService creates an AuditLogServiceInterface backed by the API client
func NewAuditLogService(client *apiclient.Client) AuditLogServiceInterface {
	return &auditLogService{client: client}
}

func (s *auditLogService) GetRequestLogs(ctx context.Context, username string) (*models.Page[models.AuditLogEntry], error) {
	query := url.Values{}
	if username != "" {
		query.Set("username", username)
	}

	resp, err := s.client.Get(ctx, "/audit-logs", query)
	if err != nil {
		return nil, err
	}

	var page models.Page[models.AuditLogEntry]
	if err := resp.DecodeJSON(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
