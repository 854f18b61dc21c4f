package services

import (
	"context"

	"expense-console/internal/apiclient"
)

type authService struct {
	client *apiclient.Client
}

// NewAuthService creates an AuthServiceInterface backed by the API client
func NewAuthService(client *apiclient.Client) AuthServiceInterface {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	resp, err := s.client.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResult(resp)
}

func (s *authService) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResult, error) {
	resp, err := s.client.Post(ctx, "/auth/register", map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResult(resp)
}

func (s *authService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	resp, err := s.client.Post(ctx, "/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   code,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResult(resp)
}

func (s *authService) ResendOTP(ctx context.Context, email string) error {
	_, err := s.client.Post(ctx, "/auth/resend-otp", map[string]string{"email": email})
	return err
}

func decodeAuthResult(resp *apiclient.Response) (*AuthResult, error) {
	var result AuthResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
