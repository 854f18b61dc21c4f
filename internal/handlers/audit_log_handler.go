package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/services"
)

// AuditLogHandler serves the admin audit-trail viewer
type AuditLogHandler struct {
	auditLogService services.AuditLogServiceInterface
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(auditLogService services.AuditLogServiceInterface) *AuditLogHandler {
	return &AuditLogHandler{auditLogService: auditLogService}
}

// AuditLogsViewModel is the data behind the audit log page
type AuditLogsViewModel struct {
	Username string
	Logs     *models.Page[models.AuditLogEntry]
}

// Page renders the request logs, optionally filtered by username
func (h *AuditLogHandler) Page(c echo.Context) error {
	username := c.QueryParam("username")

	vm := &AuditLogsViewModel{Username: username}
	errMsg := ""

	logs, err := h.auditLogService.GetRequestLogs(c.Request().Context(), username)
	if err != nil {
		errMsg = apperrors.ExtractMessage(err, MsgLoadAuditLogsFailed)
	} else {
		vm.Logs = logs
	}

	return c.Render(http.StatusOK, "audit_logs", &PageData{
		Title: "Audit logs",
		User:  middleware.UserFromContext(c),
		Error: errMsg,
		Data:  vm,
	})
}
