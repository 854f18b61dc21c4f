package session

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"expense-console/internal/config"
	"expense-console/internal/models"
)

// StoreTestSuite defines the test suite for the session cookie manager
type StoreTestSuite struct {
	suite.Suite
	manager *Manager
}

// TestStoreTestSuite runs the test suite
func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.manager = NewManager(config.SessionConfig{
		DurableMaxAge: 30 * 24 * time.Hour,
		CookieSecure:  false,
	})
}

// requestWithCookies round-trips the recorder's Set-Cookie headers into a new
// request, the way a browser would on the next navigation.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge >= 0 {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}
	return req
}

func (s *StoreTestSuite) TestLoad_NoCookies() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	cred := s.manager.Load(req)
	s.False(cred.IsAuthenticated())
	s.Nil(cred.User)
}

func (s *StoreTestSuite) TestSaveAndLoad_DurableScope() {
	user := &models.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: "ADMIN"}
	rec := httptest.NewRecorder()
	s.manager.Save(rec, Credential{Token: "tok-durable", User: user}, ScopeDurable)

	// Durable cookies carry a max age; tab cookies would not.
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 2)
	for _, cookie := range cookies {
		s.Positive(cookie.MaxAge)
		s.True(cookie.HttpOnly)
	}

	cred := s.manager.Load(requestWithCookies(rec))
	s.True(cred.IsAuthenticated())
	s.Equal("tok-durable", cred.Token)
	s.Require().NotNil(cred.User)
	s.Equal("Ada Lovelace", cred.User.FullName())
	s.True(cred.User.IsAdmin())
}

func (s *StoreTestSuite) TestSaveAndLoad_TabScope() {
	user := &models.User{ID: 9, FirstName: "Max", Role: "USER"}
	rec := httptest.NewRecorder()
	s.manager.Save(rec, Credential{Token: "tok-tab", User: user}, ScopeTab)

	for _, cookie := range rec.Result().Cookies() {
		s.Zero(cookie.MaxAge)
	}

	cred := s.manager.Load(requestWithCookies(rec))
	s.Equal("tok-tab", cred.Token)
	s.Require().NotNil(cred.User)
	s.False(cred.User.IsAdmin())
}

func (s *StoreTestSuite) TestLoad_DurableScopeWins() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "expense_token", Value: "durable-token"})
	req.AddCookie(&http.Cookie{Name: "expense_token_tab", Value: "tab-token"})

	cred := s.manager.Load(req)
	s.Equal("durable-token", cred.Token)
}

func (s *StoreTestSuite) TestLoad_MalformedProfileYieldsNilUser() {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "not base64", value: "%%%not-base64%%%"},
		{name: "base64 but not json", value: base64.RawURLEncoding.EncodeToString([]byte("not json"))},
		{name: "empty", value: ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "expense_token", Value: "some-token"})
			req.AddCookie(&http.Cookie{Name: "expense_user", Value: tc.value})

			cred := s.manager.Load(req)
			s.True(cred.IsAuthenticated())
			s.Nil(cred.User)
		})
	}
}

func (s *StoreTestSuite) TestSave_TokenWithoutProfile() {
	rec := httptest.NewRecorder()
	s.manager.Save(rec, Credential{Token: "bare-token"}, ScopeTab)

	s.Len(rec.Result().Cookies(), 1)

	cred := s.manager.Load(requestWithCookies(rec))
	s.Equal("bare-token", cred.Token)
	s.Nil(cred.User)
}

func (s *StoreTestSuite) TestClear_RemovesBothScopes() {
	rec := httptest.NewRecorder()
	s.manager.Clear(rec)

	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 4)
	for _, cookie := range cookies {
		s.Equal(-1, cookie.MaxAge)
		s.Empty(cookie.Value)
	}
}

func (s *StoreTestSuite) TestSecureFlagFollowsConfig() {
	secureManager := NewManager(config.SessionConfig{DurableMaxAge: time.Hour, CookieSecure: true})
	rec := httptest.NewRecorder()
	secureManager.Save(rec, Credential{Token: "t"}, ScopeDurable)

	for _, cookie := range rec.Result().Cookies() {
		s.True(cookie.Secure)
	}
}
