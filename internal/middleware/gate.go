package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"expense-console/internal/apiclient"
	"expense-console/internal/models"
	"expense-console/internal/session"
)

// nowFunc is swapped out in tests
var nowFunc = time.Now

// Context keys set by the gate
const (
	CredentialContextKey = "session_credential"
	UserContextKey       = "session_user"
)

// Landing routes used by the gate's redirect decisions
const (
	LoginRoute       = "/login"
	UserLandingRoute = "/user/dashboard"
)

// RequireAuth gates every protected view. The credential is evaluated
// synchronously on each request: no timer, no cross-tab reactivity. Token
// presence alone decides access; the role only matters to RequireAdmin.
//
// An authorization failure is a redirect, never a rendered error.
func RequireAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred := sessions.Load(c.Request())
			if !cred.IsAuthenticated() || tokenExpired(cred.Token) {
				return c.Redirect(302, LoginRoute)
			}

			c.Set(CredentialContextKey, cred)
			if cred.User != nil {
				c.Set(UserContextKey, cred.User)
			}

			// Hand the per-request token to the shared API client.
			ctx := apiclient.ContextWithToken(c.Request().Context(), cred.Token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin gates admin-only views. Must run after RequireAuth. The role
// comparison is case-insensitive because the backend is inconsistent about
// casing. A token without a readable profile is redirected too: rendering an
// admin screen with an unknown role is not an acceptable fallback.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*models.User)
			if !ok || user == nil || !user.IsAdmin() {
				return c.Redirect(302, UserLandingRoute)
			}
			return next(c)
		}
	}
}

// CredentialFromContext returns the credential stored by RequireAuth
func CredentialFromContext(c echo.Context) (session.Credential, bool) {
	cred, ok := c.Get(CredentialContextKey).(session.Credential)
	return cred, ok
}

// UserFromContext returns the cached profile stored by RequireAuth, or nil
func UserFromContext(c echo.Context) *models.User {
	user, _ := c.Get(UserContextKey).(*models.User)
	return user
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Opaque tokens that are not
// JWTs pass through untouched.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(nowFunc())
}
