package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"expense-console/internal/apiclient"
	"expense-console/internal/dto"
	"expense-console/internal/models"
)

// Pagination defaults shared by the paginated services
const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

type expenseService struct {
	client *apiclient.Client
}

// NewExpenseService creates an ExpenseServiceInterface backed by the API client
func NewExpenseService(client *apiclient.Client) ExpenseServiceInterface {
	return &expenseService{client: client}
}

func (s *expenseService) List(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	resp, err := s.client.Get(ctx, "/expenses", query)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Expense]
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *expenseService) Get(ctx context.Context, id int64) (*models.Expense, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/expenses/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeExpense(resp)
}

func (s *expenseService) Create(ctx context.Context, form dto.ExpenseForm) (*models.Expense, error) {
	resp, err := s.client.Post(ctx, "/expenses", expenseBody(form))
	if err != nil {
		return nil, err
	}
	return decodeExpense(resp)
}

func (s *expenseService) Update(ctx context.Context, id int64, form dto.ExpenseForm) (*models.Expense, error) {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/expenses/%d", id), expenseBody(form))
	if err != nil {
		return nil, err
	}
	return decodeExpense(resp)
}

func (s *expenseService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/expenses/%d", id), nil)
	return err
}

// expenseBody converts a validated form draft into the backend's JSON shape.
// The form validator has already guaranteed that amount parses and that the
// category id is numeric.
func expenseBody(form dto.ExpenseForm) map[string]interface{} {
	amount, _ := decimal.NewFromString(form.Amount)
	categoryID, _ := strconv.ParseInt(form.CategoryID, 10, 64)

	return map[string]interface{}{
		"title":       form.Title,
		"amount":      amount.InexactFloat64(),
		"description": form.Description,
		"date":        form.Date,
		"categoryId":  categoryID,
	}
}

func decodeExpense(resp *apiclient.Response) (*models.Expense, error) {
	var expense models.Expense
	if err := resp.DecodeJSON(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}
