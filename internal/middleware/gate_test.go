package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"expense-console/internal/apiclient"
	"expense-console/internal/config"
	"expense-console/internal/models"
	"expense-console/internal/session"
)

// GateTestSuite defines the test suite for the auth and admin gates
type GateTestSuite struct {
	suite.Suite
	sessions *session.Manager
	e        *echo.Echo
}

// TestGateTestSuite runs the test suite
func TestGateTestSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) SetupTest() {
	s.sessions = session.NewManager(config.SessionConfig{DurableMaxAge: time.Hour})
	s.e = echo.New()
	nowFunc = time.Now
}

func (s *GateTestSuite) TearDownTest() {
	nowFunc = time.Now
}

// signedToken builds a real JWT carrying the given expiry. The gate never
// verifies the signature, so any key works.
func (s *GateTestSuite) signedToken(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	s.Require().NoError(err)
	return signed
}

// run builds an authenticated request by saving the credential and
// replaying the resulting cookies, then runs it through the middleware chain.
func (s *GateTestSuite) run(cred *session.Credential, middlewares ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if cred != nil {
		saveRec := httptest.NewRecorder()
		s.sessions.Save(saveRec, *cred, session.ScopeDurable)
		for _, cookie := range saveRec.Result().Cookies() {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}

	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	reached := false
	handler := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	s.NoError(handler(c))
	return rec, reached
}

func (s *GateTestSuite) TestRequireAuth_NoCredentialRedirectsToLogin() {
	rec, reached := s.run(nil, RequireAuth(s.sessions))
	s.False(reached)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal(LoginRoute, rec.Header().Get(echo.HeaderLocation))
}

func (s *GateTestSuite) TestRequireAuth_ProfileWithoutTokenRedirects() {
	// A stored profile alone never grants access.
	req := httptest.NewRequest(http.MethodGet, "/user/expenses", nil)
	req.AddCookie(&http.Cookie{Name: "expense_user", Value: "eyJpZCI6MX0"})
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	reached := false
	s.NoError(RequireAuth(s.sessions)(func(c echo.Context) error {
		reached = true
		return nil
	})(c))

	s.False(reached)
	s.Equal(LoginRoute, rec.Header().Get(echo.HeaderLocation))
}

func (s *GateTestSuite) TestRequireAuth_ValidTokenPasses() {
	user := &models.User{ID: 1, Role: "USER"}
	cred := &session.Credential{Token: s.signedToken(time.Now().Add(time.Hour)), User: user}

	_, reached := s.run(cred, RequireAuth(s.sessions))
	s.True(reached)
}

func (s *GateTestSuite) TestRequireAuth_OpaqueTokenPasses() {
	// Tokens that are not JWTs carry no readable expiry and pass through.
	cred := &session.Credential{Token: "opaque-session-token", User: &models.User{ID: 1, Role: "USER"}}

	_, reached := s.run(cred, RequireAuth(s.sessions))
	s.True(reached)
}

func (s *GateTestSuite) TestRequireAuth_ExpiredTokenRedirects() {
	cred := &session.Credential{Token: s.signedToken(time.Now().Add(-time.Minute)), User: &models.User{ID: 1, Role: "ADMIN"}}

	rec, reached := s.run(cred, RequireAuth(s.sessions))
	s.False(reached)
	s.Equal(LoginRoute, rec.Header().Get(echo.HeaderLocation))
}

func (s *GateTestSuite) TestRequireAuth_ExpiryEvaluatedAgainstClock() {
	token := s.signedToken(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	cred := &session.Credential{Token: token, User: &models.User{ID: 1, Role: "USER"}}

	nowFunc = func() time.Time { return time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC) }
	_, reached := s.run(cred, RequireAuth(s.sessions))
	s.True(reached)

	nowFunc = func() time.Time { return time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC) }
	_, reached = s.run(cred, RequireAuth(s.sessions))
	s.False(reached)
}

func (s *GateTestSuite) TestRequireAuth_SetsContextAndClientToken() {
	user := &models.User{ID: 5, FirstName: "Ada", Role: "ADMIN"}
	token := s.signedToken(time.Now().Add(time.Hour))
	cred := &session.Credential{Token: token, User: user}

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	saveRec := httptest.NewRecorder()
	s.sessions.Save(saveRec, *cred, session.ScopeDurable)
	for _, cookie := range saveRec.Result().Cookies() {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(RequireAuth(s.sessions)(func(c echo.Context) error {
		got, ok := CredentialFromContext(c)
		s.True(ok)
		s.Equal(token, got.Token)

		s.Require().NotNil(UserFromContext(c))
		s.Equal(int64(5), UserFromContext(c).ID)

		s.Equal(token, apiclient.TokenFromContext(c.Request().Context()))
		return nil
	})(c))
}

func (s *GateTestSuite) TestRequireAdmin_RoleDecisions() {
	testCases := []struct {
		name    string
		role    string
		allowed bool
	}{
		{name: "uppercase admin", role: "ADMIN", allowed: true},
		{name: "lowercase admin", role: "admin", allowed: true},
		{name: "mixed case admin", role: "Admin", allowed: true},
		{name: "regular user", role: "USER", allowed: false},
		{name: "unknown role", role: "AUDITOR", allowed: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cred := &session.Credential{
				Token: s.signedToken(time.Now().Add(time.Hour)),
				User:  &models.User{ID: 1, Role: tc.role},
			}

			rec, reached := s.run(cred, RequireAuth(s.sessions), RequireAdmin())
			s.Equal(tc.allowed, reached)
			if !tc.allowed {
				s.Equal(UserLandingRoute, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func (s *GateTestSuite) TestRequireAdmin_MissingProfileRedirects() {
	// A token with no readable profile must not reach an admin screen.
	cred := &session.Credential{Token: s.signedToken(time.Now().Add(time.Hour))}

	rec, reached := s.run(cred, RequireAuth(s.sessions), RequireAdmin())
	s.False(reached)
	s.Equal(UserLandingRoute, rec.Header().Get(echo.HeaderLocation))
}
