package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RateLimiterTestSuite defines the test suite for the per-IP rate limiter
type RateLimiterTestSuite struct {
	suite.Suite
	e *echo.Echo
}

// TestRateLimiterTestSuite runs the test suite
func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) SetupTest() {
	s.e = echo.New()
}

func (s *RateLimiterTestSuite) do(rl *RateLimiter, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	s.NoError(handler(c))
	return rec.Code
}

func (s *RateLimiterTestSuite) TestAllowsWithinBurst() {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		s.Equal(http.StatusOK, s.do(rl, "10.0.0.1"))
	}
}

func (s *RateLimiterTestSuite) TestBlocksBeyondBurst() {
	rl := NewRateLimiter(1, 2)

	s.Equal(http.StatusOK, s.do(rl, "10.0.0.2"))
	s.Equal(http.StatusOK, s.do(rl, "10.0.0.2"))
	s.Equal(http.StatusTooManyRequests, s.do(rl, "10.0.0.2"))
}

func (s *RateLimiterTestSuite) TestLimitsPerIP() {
	rl := NewRateLimiter(1, 1)

	s.Equal(http.StatusOK, s.do(rl, "10.0.0.3"))
	s.Equal(http.StatusTooManyRequests, s.do(rl, "10.0.0.3"))

	// A different client is unaffected.
	s.Equal(http.StatusOK, s.do(rl, "10.0.0.4"))
}

func (s *RateLimiterTestSuite) TestClientIPPrecedence() {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.9")
	c := s.e.NewContext(req, httptest.NewRecorder())

	s.Equal("203.0.113.7", clientIP(c))

	req.Header.Del("X-Forwarded-For")
	s.Equal("10.0.0.9", clientIP(c))
}
