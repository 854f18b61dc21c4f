package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ErrorsTestSuite defines the test suite for the tagged error taxonomy
type ErrorsTestSuite struct {
	suite.Suite
}

// TestErrorsTestSuite runs the test suite
func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestKindPredicates() {
	transport := NewTransport(404, "Expense not found", nil)
	validation := NewValidation(map[string]string{"title": "is required"})
	authorization := NewAuthorization("admin role required")

	s.True(IsTransport(transport))
	s.False(IsTransport(validation))
	s.False(IsTransport(authorization))

	s.True(IsValidation(validation))
	s.False(IsValidation(transport))

	s.False(IsTransport(errors.New("plain")))
	s.False(IsValidation(nil))
}

func (s *ErrorsTestSuite) TestKindPredicates_Wrapped() {
	wrapped := fmt.Errorf("loading page: %w", NewTransport(500, "boom", nil))
	s.True(IsTransport(wrapped))
	s.Equal(500, StatusCode(wrapped))
}

func (s *ErrorsTestSuite) TestStatusCode() {
	s.Equal(404, StatusCode(NewTransport(404, "", nil)))
	s.Zero(StatusCode(NewValidation(nil)))
	s.Zero(StatusCode(errors.New("plain")))
	s.Zero(StatusCode(nil))
}

func (s *ErrorsTestSuite) TestFieldErrors() {
	fields := map[string]string{"email": "must be a valid email address"}
	s.Equal(fields, FieldErrors(NewValidation(fields)))
	s.Nil(FieldErrors(NewTransport(400, "bad request", nil)))
	s.Nil(FieldErrors(nil))
}

func (s *ErrorsTestSuite) TestMessageFromBody() {
	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "top-level message",
			body:     `{"message":"Invalid credentials"}`,
			expected: "Invalid credentials",
		},
		{
			name:     "nested error message",
			body:     `{"error":{"message":"Category not found"}}`,
			expected: "Category not found",
		},
		{
			name:     "top-level wins over nested",
			body:     `{"message":"outer","error":{"message":"inner"}}`,
			expected: "outer",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
		{
			name:     "not json",
			body:     "<html>502 Bad Gateway</html>",
			expected: "",
		},
		{
			name:     "json without message",
			body:     `{"status":500}`,
			expected: "",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, MessageFromBody([]byte(tc.body)))
		})
	}
}

func (s *ErrorsTestSuite) TestExtractMessage() {
	testCases := []struct {
		name     string
		err      error
		fallback string
		expected string
	}{
		{
			name:     "nil error uses fallback",
			err:      nil,
			fallback: "Failed to load expenses",
			expected: "Failed to load expenses",
		},
		{
			name:     "tagged error with message",
			err:      NewTransport(500, "Internal server error", nil),
			fallback: "Failed to load expenses",
			expected: "Internal server error",
		},
		{
			name:     "tagged error without message falls through to cause",
			err:      NewTransport(502, "", errors.New("connection refused")),
			fallback: "Failed to load expenses",
			expected: "connection refused",
		},
		{
			name:     "tagged error with nothing uses fallback",
			err:      &Error{Kind: KindTransport, Status: 502},
			fallback: "Failed to load expenses",
			expected: "Failed to load expenses",
		},
		{
			name:     "plain error uses its own text",
			err:      errors.New("context deadline exceeded"),
			fallback: "Failed to load expenses",
			expected: "context deadline exceeded",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, ExtractMessage(tc.err, tc.fallback))
		})
	}
}

func (s *ErrorsTestSuite) TestErrorText() {
	s.Equal("Expense not found", NewTransport(404, "Expense not found", nil).Error())

	cause := errors.New("dial tcp: connection refused")
	s.Equal(cause.Error(), NewTransport(0, "", cause).Error())
	s.Equal(cause, errors.Unwrap(NewTransport(0, "", cause)))

	s.Equal("[TRANSPORT 404] Expense not found", NewTransport(404, "Expense not found", nil).String())
}
