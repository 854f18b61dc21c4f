package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"expense-console/internal/models"
	"expense-console/internal/services"
)

// Operation-specific fallback messages, used when a failed backend call
// carries no message of its own.
const (
	MsgLoadExpensesFailed   = "Failed to load expenses"
	MsgLoadCategoriesFailed = "Failed to load categories"
	MsgLoadUsersFailed      = "Failed to load users"
	MsgLoadReportFailed     = "Failed to load report"
	MsgLoadAuditLogsFailed  = "Failed to load audit logs"
	MsgLoginFailed          = "Login failed. Please check your credentials."
	MsgRegisterFailed       = "Registration failed. Please try again."
	MsgOTPFailed            = "Verification failed. Please check the code."
)

// PageData is the payload every page template receives. Error feeds the
// dismissible banner at the top of the content area.
type PageData struct {
	Title  string
	User   *models.User
	Error  string
	Fields map[string]string
	Data   interface{}
}

// getIntParam reads an integer query parameter with a default
func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}
	return value
}

// getIDParam reads the numeric :id path parameter
func getIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// pageQuery reads the page/size query params with the service defaults
func pageQuery(c echo.Context) (page, size int) {
	page = getIntParam(c, "page", services.DefaultPage)
	size = getIntParam(c, "size", services.DefaultPageSize)
	if page < 0 {
		page = services.DefaultPage
	}
	if size <= 0 {
		size = services.DefaultPageSize
	}
	return page, size
}
