package models

import (
	"fmt"
	"time"
)

// AuditLogEntry is one request-log record from the backend's audit trail.
// The console only displays these; it never writes audit entries itself.
type AuditLogEntry struct {
	ID           int64     `json:"id"`
	Method       string    `json:"method"`
	UserName     string    `json:"userName"`
	Endpoint     string    `json:"endpoint"`
	RequestBody  *string   `json:"requestBody,omitempty"`
	ClientIP     string    `json:"clientIp"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e *AuditLogEntry) String() string {
	status := "ok"
	if !e.Success {
		status = "failed"
	}
	return fmt.Sprintf("AuditLog[%s %s by %s from %s: %s at %s]",
		e.Method, e.Endpoint, e.UserName, e.ClientIP, status, e.CreatedAt.Format(time.RFC3339))
}
