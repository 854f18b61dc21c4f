// Package listing implements the shared shape behind the user, category, and
// expense management screens: load a page of records, mutate through the
// owning domain service, and keep the page state consistent while requests
// are in flight.
package listing

import (
	"context"
	"sync"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/models"
	"expense-console/internal/validation"
)

// PageFetcher fetches one page of records from the owning domain service
type PageFetcher[T any] func(ctx context.Context, page, size int) (*models.Page[T], error)

// MutationFunc performs one create/update/delete call against the backend
type MutationFunc func(ctx context.Context) error

// State is a consistent snapshot of the controller for rendering
type State[T any] struct {
	Items            []T
	Loading          bool
	Error            string
	Page             int
	PageSize         int
	TotalPages       int
	TotalElements    int64
	ValidationErrors map[string]string
}

// Window returns the pagination strip for this snapshot
func (s State[T]) Window() []PageItem {
	return Window(s.TotalPages, s.Page)
}

// HasPrev reports whether the previous-page button is enabled
func (s State[T]) HasPrev() bool { return s.Page > 0 }

// HasNext reports whether the next-page button is enabled
func (s State[T]) HasNext() bool { return s.Page < s.TotalPages-1 }

// Controller drives one paginated management screen. Loads are tagged with a
// generation counter so a response that arrives after a newer load has
// started is dropped instead of overwriting fresher state.
type Controller[T any] struct {
	fetch     PageFetcher[T]
	validator *validation.Validator
	fallback  string

	mu               sync.Mutex
	generation       uint64
	items            []T
	loading          bool
	errMsg           string
	page             int
	pageSize         int
	totalPages       int
	totalElements    int64
	validationErrors map[string]string
}

// Option configures a Controller
type Option[T any] func(*Controller[T])

// WithPageSize sets the initial page size (default 10)
func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithFallbackMessage sets the error message shown when a failed call
// carries no usable message of its own, e.g. "Failed to load expenses"
func WithFallbackMessage[T any](msg string) Option[T] {
	return func(c *Controller[T]) { c.fallback = msg }
}

// NewController creates a controller over the given page fetcher
func NewController[T any](fetch PageFetcher[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		fetch:     fetch,
		validator: validation.GetValidator(),
		pageSize:  10,
		fallback:  "Failed to load records",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot safe to hand to a template
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return State[T]{
		Items:            items,
		Loading:          c.loading,
		Error:            c.errMsg,
		Page:             c.page,
		PageSize:         c.pageSize,
		TotalPages:       c.totalPages,
		TotalElements:    c.totalElements,
		ValidationErrors: c.validationErrors,
	}
}

// Load fetches the current page. On success the items and totals are replaced
// wholesale; on failure the error message is recorded and the previous items
// stay visible. The loading flag is cleared on every path.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.errMsg = ""
	page, size := c.page, c.pageSize
	c.mu.Unlock()

	result, err := c.fetch(ctx, page, size)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer load superseded this one; its response must not win.
	if gen != c.generation {
		return nil
	}

	c.loading = false
	if err != nil {
		c.errMsg = apperrors.ExtractMessage(err, c.fallback)
		return err
	}

	c.items = result.Content
	c.totalPages = result.TotalPages
	c.totalElements = result.TotalElements
	return nil
}

// ChangePage moves to page n and reloads. Bounds are not clamped here; the
// rendered strip only offers reachable pages.
func (c *Controller[T]) ChangePage(ctx context.Context, n int) error {
	c.mu.Lock()
	c.page = n
	c.mu.Unlock()
	return c.Load(ctx)
}

// ChangePageSize sets the page size, resets to the first page, and reloads
func (c *Controller[T]) ChangePageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	if size > 0 {
		c.pageSize = size
	}
	c.page = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

// Mutate runs a validated create or update. Validation failures record the
// field messages and never reach the backend. Every successful mutation
// reloads the current page rather than patching the local list, so the view
// cannot drift from the server under concurrent pagination.
func (c *Controller[T]) Mutate(ctx context.Context, draft interface{}, op MutationFunc) error {
	if err := c.validator.Struct(draft); err != nil {
		c.mu.Lock()
		c.validationErrors = apperrors.FieldErrors(err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.validationErrors = nil
	c.mu.Unlock()

	if err := op(ctx); err != nil {
		c.mu.Lock()
		c.errMsg = apperrors.ExtractMessage(err, c.fallback)
		c.mu.Unlock()
		return err
	}

	return c.Load(ctx)
}

// Apply runs an unvalidated mutation (delete, role change, password reset)
// and reloads. A failure surfaces the error banner and leaves the list as it
// was.
func (c *Controller[T]) Apply(ctx context.Context, op MutationFunc) error {
	if err := op(ctx); err != nil {
		c.mu.Lock()
		c.errMsg = apperrors.ExtractMessage(err, c.fallback)
		c.mu.Unlock()
		return err
	}
	return c.Load(ctx)
}

// Delete runs a confirmed delete and reloads. Confirmation happens in the
// dialog before this is called; a failure surfaces the error and the caller
// closes the dialog regardless of outcome.
func (c *Controller[T]) Delete(ctx context.Context, op MutationFunc) error {
	return c.Apply(ctx, op)
}

// DismissError clears the inline error banner. Dismissal does not retry.
func (c *Controller[T]) DismissError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
}
