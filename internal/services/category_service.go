package services

import (
	"context"
	"fmt"

	"expense-console/internal/apiclient"
	"expense-console/internal/dto"
	"expense-console/internal/models"
)

type categoryService struct {
	client *apiclient.Client
}

// NewCategoryService creates a CategoryServiceInterface backed by the API client
func NewCategoryService(client *apiclient.Client) CategoryServiceInterface {
	return &categoryService{client: client}
}

// List fetches all categories. The backend wraps them in a page envelope even
// though this console never paginates categories; only the content is kept.
func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	resp, err := s.client.Get(ctx, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var page models.Page[models.Category]
	if err := resp.DecodeJSON(&page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/categories/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeCategory(resp)
}

func (s *categoryService) Create(ctx context.Context, form dto.CategoryForm) (*models.Category, error) {
	resp, err := s.client.Post(ctx, "/categories", categoryBody(form))
	if err != nil {
		return nil, err
	}
	return decodeCategory(resp)
}

func (s *categoryService) Update(ctx context.Context, id int64, form dto.CategoryForm) (*models.Category, error) {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/categories/%d", id), categoryBody(form))
	if err != nil {
		return nil, err
	}
	return decodeCategory(resp)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/categories/%d", id), nil)
	return err
}

func categoryBody(form dto.CategoryForm) map[string]interface{} {
	return map[string]interface{}{
		"name":        form.Name,
		"description": form.Description,
		"active":      form.Active,
	}
}

func decodeCategory(resp *apiclient.Response) (*models.Category, error) {
	var category models.Category
	if err := resp.DecodeJSON(&category); err != nil {
		return nil, err
	}
	return &category, nil
}
