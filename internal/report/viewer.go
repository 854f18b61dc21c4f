package report

import (
	"context"
	"sync"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/models"
)

// SummaryFetcher fetches the summary for a filter set
type SummaryFetcher func(ctx context.Context, filters models.SummaryFilters) (*models.Summary, error)

// Viewer holds the report screen's filter state and decides when a refetch
// happens: on explicit Apply, or exactly once when both filters transition to
// cleared. Editing a single filter value alone never refetches.
type Viewer struct {
	fetch SummaryFetcher

	mu      sync.Mutex
	filters models.SummaryFilters
	summary *models.Summary
	errMsg  string
}

// NewViewer creates a report viewer over the given summary fetcher
func NewViewer(fetch SummaryFetcher) *Viewer {
	return &Viewer{fetch: fetch}
}

// Summary returns the last fetched summary, or nil before the first load
func (v *Viewer) Summary() *models.Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.summary
}

// Filters returns the current filter values
func (v *Viewer) Filters() models.SummaryFilters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// Error returns the message from the last failed fetch, or ""
func (v *Viewer) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// SetCategory updates the category filter. Refetches only when this edit
// clears the last remaining filter.
func (v *Viewer) SetCategory(ctx context.Context, categoryID string) error {
	return v.setFilters(ctx, models.SummaryFilters{CategoryID: categoryID, Month: v.Filters().Month})
}

// SetMonth updates the month filter. Refetches only when this edit clears the
// last remaining filter.
func (v *Viewer) SetMonth(ctx context.Context, month string) error {
	return v.setFilters(ctx, models.SummaryFilters{CategoryID: v.Filters().CategoryID, Month: month})
}

func (v *Viewer) setFilters(ctx context.Context, next models.SummaryFilters) error {
	v.mu.Lock()
	wasSet := !v.filters.IsEmpty()
	v.filters = next
	nowEmpty := next.IsEmpty()
	v.mu.Unlock()

	// Transition to the empty-filter state triggers exactly one refetch.
	if wasSet && nowEmpty {
		return v.load(ctx)
	}
	return nil
}

// Apply refetches the summary with the current filters
func (v *Viewer) Apply(ctx context.Context) error {
	return v.load(ctx)
}

// Load performs the initial fetch when the screen mounts
func (v *Viewer) Load(ctx context.Context) error {
	return v.load(ctx)
}

func (v *Viewer) load(ctx context.Context) error {
	filters := v.Filters()

	summary, err := v.fetch(ctx, filters)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		// Keep the previous summary visible behind the banner.
		v.errMsg = apperrors.ExtractMessage(err, "Failed to load report")
		return err
	}
	v.errMsg = ""
	v.summary = summary
	return nil
}
