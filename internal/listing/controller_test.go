package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"expense-console/internal/dto"
	apperrors "expense-console/internal/errors"
	"expense-console/internal/models"
)

// ControllerTestSuite defines the test suite for the listing controller
type ControllerTestSuite struct {
	suite.Suite
}

// TestControllerTestSuite runs the test suite
func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func expensePage(titles []string, page, totalPages int) *models.Page[models.Expense] {
	content := make([]models.Expense, 0, len(titles))
	for _, title := range titles {
		content = append(content, models.Expense{Title: title})
	}
	return &models.Page[models.Expense]{
		Content:       content,
		Number:        page,
		Size:          10,
		TotalPages:    totalPages,
		TotalElements: int64(totalPages * 10),
	}
}

func titlesOf(items []models.Expense) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}

func (s *ControllerTestSuite) TestLoad_Success() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		s.Equal(0, page)
		s.Equal(10, size)
		return expensePage([]string{"Groceries", "Rent"}, page, 3), nil
	})

	err := ctrl.Load(context.Background())
	s.NoError(err)

	state := ctrl.State()
	s.Equal([]string{"Groceries", "Rent"}, titlesOf(state.Items))
	s.Equal(3, state.TotalPages)
	s.Equal(int64(30), state.TotalElements)
	s.False(state.Loading)
	s.Empty(state.Error)
}

func (s *ControllerTestSuite) TestLoad_FailureKeepsPreviousItems() {
	calls := 0
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		calls++
		if calls == 1 {
			return expensePage([]string{"Groceries"}, 0, 1), nil
		}
		return nil, apperrors.NewTransport(500, "Internal server error", nil)
	}, WithFallbackMessage[models.Expense]("Failed to load expenses"))

	s.NoError(ctrl.Load(context.Background()))
	s.Error(ctrl.Load(context.Background()))

	state := ctrl.State()
	s.Equal([]string{"Groceries"}, titlesOf(state.Items))
	s.Equal("Internal server error", state.Error)
	s.False(state.Loading)
}

func (s *ControllerTestSuite) TestLoad_FailureWithoutMessageUsesFallback() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		return nil, apperrors.NewTransport(502, "", nil)
	}, WithFallbackMessage[models.Expense]("Failed to load expenses"))

	s.Error(ctrl.Load(context.Background()))
	s.Equal("Failed to load expenses", ctrl.State().Error)
}

// A load that is superseded by a newer one must not overwrite the newer
// result, no matter which response arrives last.
func (s *ControllerTestSuite) TestLoad_StaleResponseIsDropped() {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0

	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-releaseFirst
			return expensePage([]string{"stale"}, page, 1), nil
		}
		return expensePage([]string{"fresh"}, page, 1), nil
	})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ctrl.Load(context.Background())
	}()

	<-firstStarted
	s.NoError(ctrl.Load(context.Background()))
	s.Equal([]string{"fresh"}, titlesOf(ctrl.State().Items))

	close(releaseFirst)
	s.NoError(<-firstDone)

	// The first load finished after the second; its response must be gone.
	s.Equal([]string{"fresh"}, titlesOf(ctrl.State().Items))
}

func (s *ControllerTestSuite) TestChangePage_ReloadsAtNewPage() {
	var seenPage int
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		seenPage = page
		return expensePage(nil, page, 5), nil
	})

	s.NoError(ctrl.ChangePage(context.Background(), 3))
	s.Equal(3, seenPage)
	s.Equal(3, ctrl.State().Page)
}

func (s *ControllerTestSuite) TestChangePageSize_ResetsToFirstPage() {
	var seenPage, seenSize int
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		seenPage, seenSize = page, size
		return expensePage(nil, page, 1), nil
	})

	s.NoError(ctrl.ChangePage(context.Background(), 4))
	s.NoError(ctrl.ChangePageSize(context.Background(), 25))

	s.Equal(0, seenPage)
	s.Equal(25, seenSize)
	s.Equal(0, ctrl.State().Page)
	s.Equal(25, ctrl.State().PageSize)
}

func (s *ControllerTestSuite) TestMutate_ValidationFailureNeverReachesBackend() {
	fetchCalls := 0
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		fetchCalls++
		return expensePage(nil, page, 1), nil
	})

	opCalled := false
	draft := dto.ExpenseForm{Title: "   ", Amount: "-5", Date: "2026-01-15", CategoryID: "1"}
	err := ctrl.Mutate(context.Background(), draft, func(ctx context.Context) error {
		opCalled = true
		return nil
	})

	s.Error(err)
	s.False(opCalled)
	s.Zero(fetchCalls)

	state := ctrl.State()
	s.Contains(state.ValidationErrors, "title")
	s.Contains(state.ValidationErrors, "amount")
}

func (s *ControllerTestSuite) TestMutate_SuccessReloadsCurrentPage() {
	fetchCalls := 0
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		fetchCalls++
		return expensePage([]string{"Groceries", "New expense"}, page, 1), nil
	})

	opCalled := false
	draft := dto.ExpenseForm{Title: "New expense", Amount: "12.50", Date: "2026-01-15", CategoryID: "1"}
	err := ctrl.Mutate(context.Background(), draft, func(ctx context.Context) error {
		opCalled = true
		return nil
	})

	s.NoError(err)
	s.True(opCalled)
	s.Equal(1, fetchCalls)

	state := ctrl.State()
	s.Equal([]string{"Groceries", "New expense"}, titlesOf(state.Items))
	s.Nil(state.ValidationErrors)
}

func (s *ControllerTestSuite) TestMutate_ValidDraftClearsStaleFieldErrors() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		return expensePage(nil, page, 1), nil
	})

	bad := dto.ExpenseForm{Title: "", Amount: "abc", Date: "", CategoryID: ""}
	s.Error(ctrl.Mutate(context.Background(), bad, func(ctx context.Context) error { return nil }))
	s.NotEmpty(ctrl.State().ValidationErrors)

	good := dto.ExpenseForm{Title: "Coffee", Amount: "3.75", Date: "2026-02-01", CategoryID: "2"}
	s.NoError(ctrl.Mutate(context.Background(), good, func(ctx context.Context) error { return nil }))
	s.Nil(ctrl.State().ValidationErrors)
}

func (s *ControllerTestSuite) TestDelete_FailureSurfacesBackendMessage() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		return expensePage([]string{"Groceries"}, page, 1), nil
	}, WithFallbackMessage[models.Expense]("Failed to delete expense"))

	s.NoError(ctrl.Load(context.Background()))

	// Second delete of the same record: the backend no longer has it.
	err := ctrl.Delete(context.Background(), func(ctx context.Context) error {
		return apperrors.NewTransport(404, "Expense not found", nil)
	})

	s.Error(err)
	state := ctrl.State()
	s.Equal("Expense not found", state.Error)
	s.Equal([]string{"Groceries"}, titlesOf(state.Items))
}

func (s *ControllerTestSuite) TestDelete_SuccessReloads() {
	fetchCalls := 0
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		fetchCalls++
		if fetchCalls == 1 {
			return expensePage([]string{"Groceries", "Rent"}, page, 1), nil
		}
		return expensePage([]string{"Rent"}, page, 1), nil
	})

	s.NoError(ctrl.Load(context.Background()))
	s.NoError(ctrl.Delete(context.Background(), func(ctx context.Context) error { return nil }))

	s.Equal(2, fetchCalls)
	s.Equal([]string{"Rent"}, titlesOf(ctrl.State().Items))
}

func (s *ControllerTestSuite) TestDismissError() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		return nil, apperrors.NewTransport(500, "boom", nil)
	})

	s.Error(ctrl.Load(context.Background()))
	s.Equal("boom", ctrl.State().Error)

	ctrl.DismissError()
	s.Empty(ctrl.State().Error)
}

func (s *ControllerTestSuite) TestState_WindowAndNeighbours() {
	ctrl := NewController(func(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
		return expensePage(nil, page, 10), nil
	})

	s.NoError(ctrl.ChangePage(context.Background(), 5))

	state := ctrl.State()
	s.True(state.HasPrev())
	s.True(state.HasNext())
	s.Equal(pages(0, -1, 4, 5, 6, -1, 9), state.Window())

	s.NoError(ctrl.ChangePage(context.Background(), 9))
	state = ctrl.State()
	s.True(state.HasPrev())
	s.False(state.HasNext())
}
