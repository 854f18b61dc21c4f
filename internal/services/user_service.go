package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"expense-console/internal/apiclient"
	"expense-console/internal/dto"
	"expense-console/internal/models"
)

type userService struct {
	client *apiclient.Client
}

// NewUserService creates a UserServiceInterface backed by the API client
func NewUserService(client *apiclient.Client) UserServiceInterface {
	return &userService{client: client}
}

func (s *userService) List(ctx context.Context, page, size int) (*models.Page[models.User], error) {
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	resp, err := s.client.Get(ctx, "/users", query)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.User]
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(resp)
}

func (s *userService) Create(ctx context.Context, form dto.UserCreateForm) (*models.User, error) {
	resp, err := s.client.Post(ctx, "/users", map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
		"password":  form.Password,
		"role":      form.Role,
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(resp)
}

func (s *userService) Update(ctx context.Context, id int64, form dto.UserEditForm) (*models.User, error) {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/users/%d", id), map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
		"role":      form.Role,
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(resp)
}

func (s *userService) UpdateRole(ctx context.Context, id int64, role string) (*models.User, error) {
	resp, err := s.client.Patch(ctx, fmt.Sprintf("/users/%d/role", id), map[string]string{"role": role})
	if err != nil {
		return nil, err
	}
	return decodeUser(resp)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/users/%d", id), nil)
	return err
}

func (s *userService) Search(ctx context.Context, queryString string) ([]models.User, error) {
	query := url.Values{}
	query.Set("q", queryString)

	resp, err := s.client.Get(ctx, "/users/search", query)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := resp.DecodeJSON(&users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	_, err := s.client.Patch(ctx, fmt.Sprintf("/users/%d/reset-password", id), map[string]string{
		"newPassword": newPassword,
	})
	return err
}

func decodeUser(resp *apiclient.Response) (*models.User, error) {
	var user models.User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
