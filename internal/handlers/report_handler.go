package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-console/internal/dto"
	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/report"
	"expense-console/internal/services"
)

// Chart canvas constants shared with the report template
const (
	pieCenterX   = 110.0
	pieCenterY   = 110.0
	pieRadius    = 100.0
	barChartArea = 200.0
)

// ReportHandler serves the admin reports screen
type ReportHandler struct {
	reportService   services.ReportServiceInterface
	categoryService services.CategoryServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface, categoryService services.CategoryServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		categoryService: categoryService,
	}
}

// ReportViewModel is the data behind the reports page
type ReportViewModel struct {
	Filters    models.SummaryFilters
	Categories []models.Category
	Summary    *models.Summary

	TotalAmount   string
	TotalCount    int64
	AverageAmount string
	MaxAmount     string
	MinAmount     string

	PieSlices []report.PieSlice
	Bars      []report.Bar
	Ticks     []report.AxisTick
	BarHeight float64
}

// Page renders the reports screen. The filter form submits here with an
// explicit apply; merely changing a filter value never refetches, and
// clearing both filters falls back to the unfiltered summary.
func (h *ReportHandler) Page(c echo.Context) error {
	var form dto.ReportFilterForm
	_ = c.Bind(&form)

	filters := models.SummaryFilters{CategoryID: form.CategoryID, Month: form.Month}

	viewer := report.NewViewer(h.reportService.GetSummary)
	if filters.CategoryID != "" {
		_ = viewer.SetCategory(c.Request().Context(), filters.CategoryID)
	}
	if filters.Month != "" {
		_ = viewer.SetMonth(c.Request().Context(), filters.Month)
	}
	loadErr := viewer.Apply(c.Request().Context())

	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		categories = nil
	}

	vm := &ReportViewModel{
		Filters:    filters,
		Categories: categories,
		BarHeight:  barChartArea,
	}

	summary := viewer.Summary()
	if summary != nil {
		vm.Summary = summary
		vm.TotalAmount = report.FormatCurrency(summary.TotalAmount)
		vm.TotalCount = summary.TotalCount
		vm.AverageAmount = report.FormatCurrency(summary.AverageAmount)
		vm.MaxAmount = report.FormatCurrency(summary.MaxAmount)
		vm.MinAmount = report.FormatCurrency(summary.MinAmount)
		vm.PieSlices = report.PieLayout(summary.CategoryBreakdown, pieCenterX, pieCenterY, pieRadius)
		vm.Bars = report.BarLayout(summary.MonthlyBreakdown, barChartArea)
		vm.Ticks = report.AxisTicks(summary.MonthlyBreakdown, barChartArea)
	}

	errMsg := ""
	if loadErr != nil {
		errMsg = viewer.Error()
	}

	return c.Render(http.StatusOK, "reports", &PageData{
		Title: "Reports",
		User:  middleware.UserFromContext(c),
		Error: errMsg,
		Data:  vm,
	})
}
