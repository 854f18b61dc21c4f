package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/dto"
	"expense-console/internal/middleware"
	"expense-console/internal/services"
	"expense-console/internal/session"
	"expense-console/internal/validation"
)

// AuthHandler serves the login, registration, and OTP verification screens
// and owns the only writes to the session credential.
type AuthHandler struct {
	authService services.AuthServiceInterface
	sessions    *session.Manager
	validator   *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validator:   validation.GetValidator(),
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login", &PageData{Title: "Sign in"})
}

// Login handles the login form post. On success the token and profile are
// persisted into the scope the user chose and the browser is sent to the
// role-appropriate landing route.
func (h *AuthHandler) Login(c echo.Context) error {
	var form dto.LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", &PageData{Title: "Sign in", Error: MsgLoginFailed})
	}

	if err := h.validator.Struct(form); err != nil {
		return c.Render(http.StatusOK, "login", &PageData{
			Title:  "Sign in",
			Fields: apperrors.FieldErrors(err),
			Data:   form,
		})
	}

	result, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		slog.Warn("Login failed", "email", form.Email, "trace_id", middleware.GetTraceID(c))
		return c.Render(http.StatusOK, "login", &PageData{
			Title: "Sign in",
			Error: apperrors.ExtractMessage(err, MsgLoginFailed),
			Data:  form,
		})
	}

	if result.Token == "" {
		return c.Render(http.StatusOK, "login", &PageData{Title: "Sign in", Error: MsgLoginFailed, Data: form})
	}

	h.persist(c, result, form.Remember)
	return c.Redirect(http.StatusFound, landingRoute(result))
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register", &PageData{Title: "Create account"})
}

// Register handles the registration form post. Backends with OTP enabled
// return no token here; those users continue to the verification screen.
func (h *AuthHandler) Register(c echo.Context) error {
	var form dto.RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", &PageData{Title: "Create account", Error: MsgRegisterFailed})
	}

	if err := h.validator.Struct(form); err != nil {
		return c.Render(http.StatusOK, "register", &PageData{
			Title:  "Create account",
			Fields: apperrors.FieldErrors(err),
			Data:   form,
		})
	}

	result, err := h.authService.Register(c.Request().Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		return c.Render(http.StatusOK, "register", &PageData{
			Title: "Create account",
			Error: apperrors.ExtractMessage(err, MsgRegisterFailed),
			Data:  form,
		})
	}

	if result.Token == "" {
		return c.Redirect(http.StatusFound, "/register/verify?email="+form.Email)
	}

	h.persist(c, result, false)
	return c.Redirect(http.StatusFound, landingRoute(result))
}

// ShowVerifyOTP renders the OTP verification page
func (h *AuthHandler) ShowVerifyOTP(c echo.Context) error {
	return c.Render(http.StatusOK, "verify_otp", &PageData{
		Title: "Verify your email",
		Data:  dto.OTPForm{Email: c.QueryParam("email")},
	})
}

// VerifyOTP handles the verification form post
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var form dto.OTPForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "verify_otp", &PageData{Title: "Verify your email", Error: MsgOTPFailed})
	}

	if err := h.validator.Struct(form); err != nil {
		return c.Render(http.StatusOK, "verify_otp", &PageData{
			Title:  "Verify your email",
			Fields: apperrors.FieldErrors(err),
			Data:   form,
		})
	}

	result, err := h.authService.VerifyOTP(c.Request().Context(), form.Email, form.Code)
	if err != nil || result.Token == "" {
		return c.Render(http.StatusOK, "verify_otp", &PageData{
			Title: "Verify your email",
			Error: apperrors.ExtractMessage(err, MsgOTPFailed),
			Data:  form,
		})
	}

	h.persist(c, result, false)
	return c.Redirect(http.StatusFound, landingRoute(result))
}

// ResendOTP triggers a fresh code and returns to the verification page
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	email := c.FormValue("email")
	if email != "" {
		if err := h.authService.ResendOTP(c.Request().Context(), email); err != nil {
			slog.Warn("OTP resend failed", "email", email, "trace_id", middleware.GetTraceID(c))
		}
	}
	return c.Redirect(http.StatusFound, "/register/verify?email="+email)
}

// Logout clears both credential scopes and returns to the login page.
// No backend call is made; the token simply stops being presented.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c.Response())
	return c.Redirect(http.StatusFound, middleware.LoginRoute)
}

func (h *AuthHandler) persist(c echo.Context, result *services.AuthResult, remember bool) {
	scope := session.ScopeTab
	if remember {
		scope = session.ScopeDurable
	}
	h.sessions.Save(c.Response(), session.Credential{Token: result.Token, User: result.User}, scope)
}

func landingRoute(result *services.AuthResult) string {
	if result.User != nil && result.User.IsAdmin() {
		return "/admin/dashboard"
	}
	return middleware.UserLandingRoute
}
