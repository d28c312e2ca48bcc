package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tracker/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

func TestGetStats(t *testing.T) {
	identity := testutil.NewIdentity("kasia")

	tests := []struct {
		name     string
		identity bool
		setup    func(repo *MockDashboardRepository)
		status   int
		body     string
	}{
		{
			name:     "counts for the caller",
			identity: true,
			setup: func(repo *MockDashboardRepository) {
				repo.On("GetStats", identity.UserID).Return(&Stats{
					TotalProjects: 4, ActiveProjects: 2, MyTasks: 7, UrgentTasks: 1, LowStockItems: 3,
				}, nil)
			},
			status: http.StatusOK,
			body:   `{"total_projects":4,"active_projects":2,"my_tasks":7,"urgent_tasks":1,"low_stock_items":3}`,
		},
		{
			name:     "anonymous caller",
			identity: false,
			setup:    func(repo *MockDashboardRepository) {},
			status:   http.StatusUnauthorized,
		},
		{
			name:     "storage failure",
			identity: true,
			setup: func(repo *MockDashboardRepository) {
				repo.On("GetStats", identity.UserID).Return(nil, errors.New("boom"))
			},
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDashboardRepository)
			tt.setup(repo)

			caller := identity
			if !tt.identity {
				caller = nil
			}
			router, group := testutil.Router(caller)
			NewDashboardHandler(NewDashboardService(repo)).RegisterRoutes(group)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
			repo.AssertExpectations(t)
		})
	}
}
