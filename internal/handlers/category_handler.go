package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-console/internal/dto"
	"expense-console/internal/listing"
	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/services"
)

// CategoryHandler serves the admin category management screen
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriesViewModel is the data behind the category management page
type CategoriesViewModel struct {
	List listing.State[models.Category]
	Form dto.CategoryForm
}

// controller wraps the unpaginated category list in a single-page envelope so
// the screen shares the list-with-mutation machinery of the other two.
func (h *CategoryHandler) controller() *listing.Controller[models.Category] {
	fetch := func(ctx context.Context, page, size int) (*models.Page[models.Category], error) {
		categories, err := h.categoryService.List(ctx)
		if err != nil {
			return nil, err
		}
		return &models.Page[models.Category]{
			Content:       categories,
			TotalPages:    1,
			TotalElements: int64(len(categories)),
			Size:          len(categories),
			Number:        0,
		}, nil
	}

	return listing.NewController(
		fetch,
		listing.WithFallbackMessage[models.Category](MsgLoadCategoriesFailed),
	)
}

// ListPage renders all categories
func (h *CategoryHandler) ListPage(c echo.Context) error {
	ctrl := h.controller()
	_ = ctrl.Load(c.Request().Context())
	return h.render(c, ctrl, dto.CategoryForm{Active: true})
}

// Create handles the create-category form post
func (h *CategoryHandler) Create(c echo.Context) error {
	var form dto.CategoryForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/categories")
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.categoryService.Create(ctx, form)
		return err
	})
}

// Update handles the edit-category form post
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/categories")
	}

	var form dto.CategoryForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/categories")
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.categoryService.Update(ctx, id, form)
		return err
	})
}

// Delete handles the confirmed delete post
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/categories")
	}

	ctrl := h.controller()
	_ = ctrl.Load(c.Request().Context())

	if err := ctrl.Delete(c.Request().Context(), func(ctx context.Context) error {
		return h.categoryService.Delete(ctx, id)
	}); err != nil {
		return h.render(c, ctrl, dto.CategoryForm{Active: true})
	}

	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *CategoryHandler) mutate(c echo.Context, form dto.CategoryForm, op listing.MutationFunc) error {
	ctrl := h.controller()
	_ = ctrl.Load(c.Request().Context())

	if err := ctrl.Mutate(c.Request().Context(), form, op); err != nil {
		return h.render(c, ctrl, form)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *CategoryHandler) render(c echo.Context, ctrl *listing.Controller[models.Category], form dto.CategoryForm) error {
	state := ctrl.State()
	return c.Render(http.StatusOK, "categories", &PageData{
		Title:  "Categories",
		User:   middleware.UserFromContext(c),
		Error:  state.Error,
		Fields: state.ValidationErrors,
		Data: &CategoriesViewModel{
			List: state,
			Form: form,
		},
	})
}
