package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"expense-console/internal/config"
	"expense-console/internal/models"
)

// Scope selects which cookie scope a credential is written to.
type Scope int

const (
	// ScopeDurable survives browser restarts ("remember me").
	ScopeDurable Scope = iota
	// ScopeTab dies with the browser session.
	ScopeTab
)

// Cookie names per scope. Reads always check durable first.
const (
	durableTokenCookie = "expense_token"
	durableUserCookie  = "expense_user"
	tabTokenCookie     = "expense_token_tab"
	tabUserCookie      = "expense_user_tab"
)

// Credential is the session state shared across screens: the opaque bearer
// token plus the cached user profile. User may be nil when the backend
// returned a token without a profile, or when the stored profile failed to
// decode.
type Credential struct {
	Token string
	User  *models.User
}

// IsAuthenticated reports whether a token is present. Token presence alone
// gates route access; the role only gates admin routes.
func (c Credential) IsAuthenticated() bool {
	return c.Token != ""
}

// Manager owns the load/save/clear lifecycle of the session credential.
// It replaces ambient storage lookups with an explicit object handed to the
// gate and the auth handler.
type Manager struct {
	secure        bool
	durableMaxAge time.Duration
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secure:        cfg.CookieSecure,
		durableMaxAge: cfg.DurableMaxAge,
	}
}

// Load reads the credential from the request cookies, durable scope first,
// then tab scope. A missing or undecodable profile yields User == nil; the
// caller decides what that means.
func (m *Manager) Load(r *http.Request) Credential {
	if token := cookieValue(r, durableTokenCookie); token != "" {
		return Credential{Token: token, User: decodeUser(cookieValue(r, durableUserCookie))}
	}
	if token := cookieValue(r, tabTokenCookie); token != "" {
		return Credential{Token: token, User: decodeUser(cookieValue(r, tabUserCookie))}
	}
	return Credential{}
}

// Save writes the credential into the chosen scope. Writes happen only at
// login, registration, and OTP verification success.
func (m *Manager) Save(w http.ResponseWriter, cred Credential, scope Scope) {
	tokenName, userName := tabTokenCookie, tabUserCookie
	maxAge := 0
	if scope == ScopeDurable {
		tokenName, userName = durableTokenCookie, durableUserCookie
		maxAge = int(m.durableMaxAge.Seconds())
	}

	m.setCookie(w, tokenName, cred.Token, maxAge)
	if cred.User != nil {
		m.setCookie(w, userName, encodeUser(cred.User), maxAge)
	}
}

// Clear removes both scopes. Logout is client-side only; no backend session
// invalidation call is made.
func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{durableTokenCookie, durableUserCookie, tabTokenCookie, tabUserCookie} {
		m.setCookie(w, name, "", -1)
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Profiles are stored as base64-encoded JSON so the cookie value stays within
// the allowed character set.

func encodeUser(user *models.User) string {
	data, err := json.Marshal(user)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeUser(encoded string) *models.User {
	if encoded == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}
