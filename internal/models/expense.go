package models

import "time"

// Expense represents a single expense record as returned by the backend API.
// Amounts are display-only on this side: the console never aggregates them,
// it only formats what the backend computed.
type Expense struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Amount       float64    `json:"amount"`
	Description  string     `json:"description,omitempty"`
	Date         string     `json:"date"`
	CategoryID   int64      `json:"categoryId"`
	UserID       int64      `json:"userId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	UserName     string     `json:"userName,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// Category represents an expense category.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
