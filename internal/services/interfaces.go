package services

import (
	"context"

	"expense-console/internal/dto"
	"expense-console/internal/models"
)

// Each service maps one semantic operation onto exactly one backend API call
// plus a typed unwrap of the response body. Transport errors are rethrown
// unmodified; message extraction is the caller's concern.

// AuthResult is what a successful login, registration, or OTP verification
// returns. User may be nil when the backend sends a bare token.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// AuthServiceInterface handles authentication against the backend.
// Persisting the resulting credential is the caller's job, not the service's.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResult, error)
	VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
}

// ExpenseServiceInterface covers the expense CRUD surface
type ExpenseServiceInterface interface {
	List(ctx context.Context, page, size int) (*models.Page[models.Expense], error)
	Get(ctx context.Context, id int64) (*models.Expense, error)
	Create(ctx context.Context, form dto.ExpenseForm) (*models.Expense, error)
	Update(ctx context.Context, id int64, form dto.ExpenseForm) (*models.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryServiceInterface covers the category CRUD surface. The backend
// returns a page envelope but this console lists categories unpaginated.
type CategoryServiceInterface interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, form dto.CategoryForm) (*models.Category, error)
	Update(ctx context.Context, id int64, form dto.CategoryForm) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// UserServiceInterface covers the admin user-management surface
type UserServiceInterface interface {
	List(ctx context.Context, page, size int) (*models.Page[models.User], error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, form dto.UserCreateForm) (*models.User, error)
	Update(ctx context.Context, id int64, form dto.UserEditForm) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.User, error)
	ResetPassword(ctx context.Context, id int64, newPassword string) error
}

// ReportServiceInterface fetches the server-computed expense summary
type ReportServiceInterface interface {
	GetSummary(ctx context.Context, filters models.SummaryFilters) (*models.Summary, error)
}

// AuditLogServiceInterface fetches the backend's request audit trail
type AuditLogServiceInterface interface {
	GetRequestLogs(ctx context.Context, username string) (*models.Page[models.AuditLogEntry], error)
}
