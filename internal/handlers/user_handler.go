package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/dto"
	"expense-console/internal/listing"
	"expense-console/internal/middleware"
	"expense-console/internal/models"
	"expense-console/internal/services"
	"expense-console/internal/validation"
)

// UserHandler serves the admin user management screen
type UserHandler struct {
	userService services.UserServiceInterface
	validator   *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validation.GetValidator(),
	}
}

// UsersViewModel is the data behind the user management page
type UsersViewModel struct {
	List          listing.State[models.User]
	SearchQuery   string
	SearchResults []models.User
	Roles         []string
	CreateForm    dto.UserCreateForm
	EditForm      dto.UserEditForm
}

func (h *UserHandler) controller(size int) *listing.Controller[models.User] {
	return listing.NewController(
		listing.PageFetcher[models.User](h.userService.List),
		listing.WithPageSize[models.User](size),
		listing.WithFallbackMessage[models.User](MsgLoadUsersFailed),
	)
}

// ListPage renders one page of users, plus search results when q is set
func (h *UserHandler) ListPage(c echo.Context) error {
	page, size := pageQuery(c)

	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	vm := &UsersViewModel{Roles: models.AllRoles()}
	if query := c.QueryParam("q"); query != "" {
		vm.SearchQuery = query
		results, err := h.userService.Search(c.Request().Context(), query)
		if err == nil {
			vm.SearchResults = results
		}
	}

	return h.render(c, ctrl, vm)
}

// Create handles the create-user form post
func (h *UserHandler) Create(c echo.Context) error {
	var form dto.UserCreateForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.userService.Create(ctx, form)
		return err
	}, &UsersViewModel{Roles: models.AllRoles(), CreateForm: form})
}

// Update handles the edit-user form post
func (h *UserHandler) Update(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	var form dto.UserEditForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	return h.mutate(c, form, func(ctx context.Context) error {
		_, err := h.userService.Update(ctx, id, form)
		return err
	}, &UsersViewModel{Roles: models.AllRoles(), EditForm: form})
}

// UpdateRole handles the role-change post from the users table
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	role := c.FormValue("role")
	if !models.IsValidRole(role) {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	if err := ctrl.Apply(c.Request().Context(), func(ctx context.Context) error {
		_, err := h.userService.UpdateRole(ctx, id, role)
		return err
	}); err != nil {
		return h.render(c, ctrl, &UsersViewModel{Roles: models.AllRoles()})
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

// Delete handles the confirmed delete post
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	if err := ctrl.Delete(c.Request().Context(), func(ctx context.Context) error {
		return h.userService.Delete(ctx, id)
	}); err != nil {
		return h.render(c, ctrl, &UsersViewModel{Roles: models.AllRoles()})
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

// ResetPassword handles the reset-password dialog post
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	var form dto.ResetPasswordForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, h.listRoute(c))
	}

	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	if err := h.validator.Struct(form); err != nil {
		vm := &UsersViewModel{Roles: models.AllRoles()}
		state := ctrl.State()
		vm.List = state
		return c.Render(http.StatusOK, "users", &PageData{
			Title:  "Users",
			User:   middleware.UserFromContext(c),
			Fields: apperrors.FieldErrors(err),
			Data:   vm,
		})
	}

	if err := ctrl.Apply(c.Request().Context(), func(ctx context.Context) error {
		return h.userService.ResetPassword(ctx, id, form.NewPassword)
	}); err != nil {
		return h.render(c, ctrl, &UsersViewModel{Roles: models.AllRoles()})
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

func (h *UserHandler) mutate(c echo.Context, form interface{}, op listing.MutationFunc, vm *UsersViewModel) error {
	page, size := pageQuery(c)
	ctrl := h.controller(size)
	_ = ctrl.ChangePage(c.Request().Context(), page)

	if err := ctrl.Mutate(c.Request().Context(), form, op); err != nil {
		return h.render(c, ctrl, vm)
	}

	return c.Redirect(http.StatusSeeOther, h.listRoute(c))
}

func (h *UserHandler) listRoute(c echo.Context) string {
	page, size := pageQuery(c)
	return fmt.Sprintf("/admin/users?page=%d&size=%d", page, size)
}

func (h *UserHandler) render(c echo.Context, ctrl *listing.Controller[models.User], vm *UsersViewModel) error {
	state := ctrl.State()
	vm.List = state
	if vm.Roles == nil {
		vm.Roles = models.AllRoles()
	}
	return c.Render(http.StatusOK, "users", &PageData{
		Title:  "Users",
		User:   middleware.UserFromContext(c),
		Error:  state.Error,
		Fields: state.ValidationErrors,
		Data:   vm,
	})
}
