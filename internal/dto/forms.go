package dto

// Form drafts bound from the console's HTML forms. Validation tags mirror the
// client-side rules; nothing here is a backend contract.

// LoginForm contains login credentials
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Remember bool   `form:"remember" json:"remember"`
}

// RegisterForm contains registration data
type RegisterForm struct {
	FirstName string `form:"firstName" json:"firstName" validate:"required"`
	LastName  string `form:"lastName" json:"lastName" validate:"required"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required,min=6"`
}

// OTPForm contains the one-time code entered after registration
type OTPForm struct {
	Email string `form:"email" json:"email" validate:"required,email"`
	Code  string `form:"otp" json:"otp" validate:"required"`
}

// ExpenseForm is the create/edit draft for an expense.
// Amount arrives as the raw form string; it must parse to a number > 0.
// Description is optional on both create and edit.
type ExpenseForm struct {
	Title       string `form:"title" json:"title" validate:"required,notblank"`
	Amount      string `form:"amount" json:"amount" validate:"required,money"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date" validate:"required"`
	CategoryID  string `form:"categoryId" json:"categoryId" validate:"required"`
}

// CategoryForm is the create/edit draft for a category
type CategoryForm struct {
	Name        string `form:"name" json:"name" validate:"required,notblank"`
	Description string `form:"description" json:"description"`
	Active      bool   `form:"active" json:"active"`
}

// UserCreateForm is the admin draft for creating a user
type UserCreateForm struct {
	FirstName string `form:"firstName" json:"firstName" validate:"required,notblank"`
	LastName  string `form:"lastName" json:"lastName" validate:"required,notblank"`
	Email     string `form:"email" json:"email" validate:"required,simple_email"`
	Password  string `form:"password" json:"password" validate:"required,min=6"`
	Role      string `form:"role" json:"role" validate:"required,role"`
}

// UserEditForm is the admin draft for editing a user. Same rules as create
// minus the password.
type UserEditForm struct {
	FirstName string `form:"firstName" json:"firstName" validate:"required,notblank"`
	LastName  string `form:"lastName" json:"lastName" validate:"required,notblank"`
	Email     string `form:"email" json:"email" validate:"required,simple_email"`
	Role      string `form:"role" json:"role" validate:"required,role"`
}

// ResetPasswordForm is the admin draft for resetting a user's password
type ResetPasswordForm struct {
	NewPassword     string `form:"newPassword" json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ReportFilterForm narrows the report summary
type ReportFilterForm struct {
	CategoryID string `form:"categoryId" json:"categoryId"`
	Month      string `form:"month" json:"month"`
}
