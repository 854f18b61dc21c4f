package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/report"
	"expense-console/internal/services"
)

// DashboardHandler serves the admin and user landing pages
type DashboardHandler struct {
	reportService  services.ReportServiceInterface
	expenseService services.ExpenseServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService services.ReportServiceInterface, expenseService services.ExpenseServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		reportService:  reportService,
		expenseService: expenseService,
	}
}

// DashboardViewModel is the data behind both dashboards
type DashboardViewModel struct {
	TotalAmount   string
	TotalCount    int64
	AverageAmount string
	Recent        []models.Expense
}

// AdminPage renders the admin landing page
func (h *DashboardHandler) AdminPage(c echo.Context) error {
	return h.page(c, "dashboard_admin", "Admin dashboard")
}

// UserPage renders the regular-user landing page
func (h *DashboardHandler) UserPage(c echo.Context) error {
	return h.page(c, "dashboard_user", "Dashboard")
}

func (h *DashboardHandler) page(c echo.Context, template, title string) error {
	ctx := c.Request().Context()
	vm := &DashboardViewModel{}
	errMsg := ""

	summary, err := h.reportService.GetSummary(ctx, models.SummaryFilters{})
	if err != nil {
		errMsg = MsgLoadReportFailed
	} else {
		vm.TotalAmount = report.FormatCurrency(summary.TotalAmount)
		vm.TotalCount = summary.TotalCount
		vm.AverageAmount = report.FormatCurrency(summary.AverageAmount)
	}

	if page, err := h.expenseService.List(ctx, 0, 5); err == nil {
		vm.Recent = page.Content
	}

	return c.Render(http.StatusOK, template, &PageData{
		Title: title,
		User:  middleware.UserFromContext(c),
		Error: errMsg,
		Data:  vm,
	})
}
