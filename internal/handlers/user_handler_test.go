package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/models"
	"expense-console/internal/services/service_mocks"
	"expense-console/web"
)

// UserHandlerSuite defines the test suite for the admin users screen
type UserHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	userService *service_mocks.MockUserServiceInterface
	handler     *UserHandler
	e           *echo.Echo
}

// TestUserHandlerSuite runs the test suite
func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userService = service_mocks.NewMockUserServiceInterface(s.ctrl)
	s.handler = NewUserHandler(s.userService)

	s.e = echo.New()
	renderer, err := NewRenderer(web.TemplatesFS)
	s.Require().NoError(err)
	s.e.Renderer = renderer
}

func (s *UserHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *UserHandlerSuite) userPage(users []models.User) *models.Page[models.User] {
	return &models.Page[models.User]{
		Content:       users,
		Size:          10,
		TotalPages:    1,
		TotalElements: int64(len(users)),
	}
}

func (s *UserHandlerSuite) postForm(target string, id string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func (s *UserHandlerSuite) TestListPage_RendersUsers() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage([]models.User{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: "ADMIN"},
			{ID: 2, FirstName: "Max", LastName: "Born", Email: "max@example.com", Role: "USER"},
		}), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.ListPage(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ada@example.com")
	s.Contains(rec.Body.String(), "Max Born")
}

func (s *UserHandlerSuite) TestListPage_SearchResults() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage(nil), nil)
	s.userService.EXPECT().
		Search(gomock.Any(), "ada").
		Return([]models.User{{ID: 1, FirstName: "Ada", Email: "ada@example.com"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/users?q=ada", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.ListPage(c))
	s.Contains(rec.Body.String(), "ada@example.com")
}

func (s *UserHandlerSuite) TestCreate_InvalidEmailRerenders() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage(nil), nil)

	c, rec := s.postForm("/admin/users", "", url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"not-an-email"},
		"password":  {"secret1"},
		"role":      {"USER"},
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "must be a valid email")
}

func (s *UserHandlerSuite) TestUpdateRole_Success() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage(nil), nil).
		Times(2)
	s.userService.EXPECT().
		UpdateRole(gomock.Any(), int64(2), "ADMIN").
		Return(&models.User{ID: 2, Role: "ADMIN"}, nil)

	c, rec := s.postForm("/admin/users/2/role", "2", url.Values{"role": {"ADMIN"}})

	s.NoError(s.handler.UpdateRole(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/users?page=0&size=10", rec.Header().Get(echo.HeaderLocation))
}

func (s *UserHandlerSuite) TestUpdateRole_UnknownRoleNeverReachesBackend() {
	c, rec := s.postForm("/admin/users/2/role", "2", url.Values{"role": {"SUPERADMIN"}})

	s.NoError(s.handler.UpdateRole(c))
	s.Equal(http.StatusSeeOther, rec.Code)
}

func (s *UserHandlerSuite) TestDelete_FailureRendersBanner() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage([]models.User{{ID: 3, FirstName: "Eve", Email: "eve@example.com"}}), nil)
	s.userService.EXPECT().
		Delete(gomock.Any(), int64(3)).
		Return(apperrors.NewTransport(409, "User owns expenses and cannot be deleted", nil))

	c, rec := s.postForm("/admin/users/3/delete", "3", url.Values{})

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "cannot be deleted")
	s.Contains(rec.Body.String(), "eve@example.com") // list stays visible
}

func (s *UserHandlerSuite) TestResetPassword_MismatchRerendersWithFieldError() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage(nil), nil)

	c, rec := s.postForm("/admin/users/2/reset-password", "2", url.Values{
		"newPassword":     {"secret1"},
		"confirmPassword": {"different"},
	})

	s.NoError(s.handler.ResetPassword(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "does not match")
}

func (s *UserHandlerSuite) TestResetPassword_Success() {
	s.userService.EXPECT().
		List(gomock.Any(), 0, 10).
		Return(s.userPage(nil), nil).
		Times(2)
	s.userService.EXPECT().
		ResetPassword(gomock.Any(), int64(2), "secret1").
		Return(nil)

	c, rec := s.postForm("/admin/users/2/reset-password", "2", url.Values{
		"newPassword":     {"secret1"},
		"confirmPassword": {"secret1"},
	})

	s.NoError(s.handler.ResetPassword(c))
	s.Equal(http.StatusSeeOther, rec.Code)
}
