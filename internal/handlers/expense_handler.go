package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-console/internal/dto"
	"expense-console/internal/listing"
	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/services"
)

// ExpenseHandler serves the expense management screen
type ExpenseHandler struct {
	expenseService  services.ExpenseServiceInterface
	categoryService services.CategoryServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface, categoryService services.CategoryServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:  expenseService,
		categoryService: categoryService,
	}
}

// ExpensesViewModel is the data behind the expense management page
type ExpensesViewModel struct {
	List       listing.State[models.Expense]
	Categories []models.Category
	Form       dto.ExpenseForm
}

func (h *ExpenseHandler) controller(size int) *listing.Controller[models.Expense] {
	return listing.NewController(
		listing.PageFetcher[models.Expense](h.expenseService.List),
		listing.WithPageSize[models.Expense](size),
		listing.WithFallbackMessage[models.Expense](MsgLoadExpensesFailed),
	)
}

// ListPage renders one page of expenses
func (h *ExpenseHandler) ListPage(c echo.Context) error {
	page, size := pageQuery(c)

	ctrl := h.controller(size)
	// A fetch failure still renders: the banner carries the message and any
	// previously loaded rows stay visible.
	_ = ctrl.ChangePage(c.Request().Context(), page)

	return h.render(c, ctrl, dto.ExpenseForm{})
}

// Create handles the create-expense form post
func (h *ExpenseHandler) Create(c echo.Context) error {
	var form dto.ExpenseForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.expenseService.Create(ctx, form)
		return err
	})
}

// Update handles the edit-expense form post
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	var form dto.ExpenseForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.expenseService.Update(ctx, id, form)
		return err
	})
}

// Delete handles the confirmed delete post. The confirmation dialog already
// happened in the page; a failure closes it and surfaces the banner.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	if err := ctrl.Delete(c.Request().Context(), func(ctx context.Context) error {
		return h.expenseService.Delete(ctx, id)
	}); err != nil {
		return h.render(c, ctrl, dto.ExpenseForm{})
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

// mutate runs a validated create/update through the list controller and
// falls back to re-rendering the page when anything goes wrong
func (h *ExpenseHandler) mutate(c echo.Context, form dto.ExpenseForm, op listing.MutationFunc) error {
	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	// Validation failures re-render with field messages; transport failures
	// re-render with the banner. Either way the draft stays in the form.
	if err := ctrl.Mutate(c.Request().Context(), form, op); err != nil {
		return h.render(c, ctrl, form)
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

// listRoute rebuilds the list URL with the current page and size
func (h *ExpenseHandler) listRoute(c echo.Context) string {
	page, size := pageQuery(c)
	return fmt.Sprintf("/user/expenses?page=%d&size=%d", page, size)
}

func (h *ExpenseHandler) render(c echo.Context, ctrl *listing.Controller[models.Expense], form dto.ExpenseForm) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		categories = nil // the category dropdown simply renders empty
	}

	state := ctrl.State()
	return c.Render(http.StatusOK, "expenses", &PageData{
		Title:  "Expenses",
		User:   middleware.UserFromContext(c),
		Error:  state.Error,
		Fields: state.ValidationErrors,
		Data: &ExpensesViewModel{
			List:       state,
			Categories: categories,
			Form:       form,
		},
	})
}
