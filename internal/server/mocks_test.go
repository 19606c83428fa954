package server

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/anika2711garg/Planix-sub000/internal/database"
	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/service"
)

// result unpacks a (value, error) mock return, tolerating a nil value.
func result[T any](args mock.Arguments) (T, error) {
	v, _ := args.Get(0).(T)
	return v, args.Error(1)
}

type dbMock struct{ mock.Mock }

var _ database.Service = (*dbMock)(nil)

func (m *dbMock) Health() map[string]string {
	return m.Called().Get(0).(map[string]string)
}

func (m *dbMock) Migrate(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *dbMock) Close() error                      { return m.Called().Error(0) }
func (m *dbMock) GetDB() *gorm.DB                   { return nil }

type authMock struct{ mock.Mock }

var _ service.AuthService = (*authMock)(nil)

func (m *authMock) Signup(ctx context.Context, req service.SignupRequest) (*service.AuthResponse, error) {
	return result[*service.AuthResponse](m.Called(ctx, req))
}

func (m *authMock) Signin(ctx context.Context, req service.SigninRequest) (*service.AuthResponse, error) {
	return result[*service.AuthResponse](m.Called(ctx, req))
}

func (m *authMock) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, token))
}

func (m *authMock) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, userID))
}

func (m *authMock) SeedManager(ctx context.Context, username, email, password string) (bool, error) {
	args := m.Called(ctx, username, email, password)
	return args.Bool(0), args.Error(1)
}

type userSvcMock struct{ mock.Mock }

var _ service.UserService = (*userSvcMock)(nil)

func (m *userSvcMock) List(ctx context.Context) ([]domain.User, error) {
	return result[[]domain.User](m.Called(ctx))
}

func (m *userSvcMock) Create(ctx context.Context, req service.CreateUserRequest) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, req))
}

func (m *userSvcMock) Update(ctx context.Context, id uint, req service.UpdateUserRequest) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, id, req))
}

func (m *userSvcMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *userSvcMock) Available(ctx context.Context) ([]domain.User, error) {
	return result[[]domain.User](m.Called(ctx))
}

type teamSvcMock struct{ mock.Mock }

var _ service.TeamService = (*teamSvcMock)(nil)

func (m *teamSvcMock) List(ctx context.Context) ([]domain.Team, error) {
	return result[[]domain.Team](m.Called(ctx))
}

func (m *teamSvcMock) Create(ctx context.Context, req service.CreateTeamRequest) (*domain.Team, error) {
	return result[*domain.Team](m.Called(ctx, req))
}

func (m *teamSvcMock) Update(ctx context.Context, id uint, req service.UpdateTeamRequest) (*domain.Team, error) {
	return result[*domain.Team](m.Called(ctx, id, req))
}

func (m *teamSvcMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *teamSvcMock) Members(ctx context.Context, teamID uint) (*service.TeamMembers, error) {
	return result[*service.TeamMembers](m.Called(ctx, teamID))
}

func (m *teamSvcMock) AddMember(ctx context.Context, req service.AddMemberRequest) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, req))
}

func (m *teamSvcMock) RemoveMember(ctx context.Context, req service.RemoveMemberRequest) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, req))
}

type planningSvcMock struct{ mock.Mock }

var _ service.PlanningService = (*planningSvcMock)(nil)

func (m *planningSvcMock) Items(ctx context.Context, sprintID *uint) (*service.ReorderItems, error) {
	return result[*service.ReorderItems](m.Called(ctx, sprintID))
}

func (m *planningSvcMock) Reorder(ctx context.Context, req service.ReorderRequest) (*service.ReorderResponse, error) {
	return result[*service.ReorderResponse](m.Called(ctx, req))
}

func (m *planningSvcMock) Plan(ctx context.Context, req service.PlanRequest) (*service.PlanResponse, error) {
	return result[*service.PlanResponse](m.Called(ctx, req))
}

func (m *planningSvcMock) Recommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error) {
	return result[[]domain.SprintRecommendation](m.Called(ctx, sprintID))
}

type performanceSvcMock struct{ mock.Mock }

var _ service.PerformanceService = (*performanceSvcMock)(nil)

func (m *performanceSvcMock) Metrics(ctx context.Context) (*service.OverallMetrics, error) {
	return result[*service.OverallMetrics](m.Called(ctx))
}

func (m *performanceSvcMock) Team(ctx context.Context, teamID *uint) (*service.TeamWorkload, error) {
	return result[*service.TeamWorkload](m.Called(ctx, teamID))
}

func (m *performanceSvcMock) Sprints(ctx context.Context, sprintID *uint) ([]service.SprintPerformance, error) {
	return result[[]service.SprintPerformance](m.Called(ctx, sprintID))
}

func (m *performanceSvcMock) Velocity(ctx context.Context, teamID *uint) (*service.VelocityChart, error) {
	return result[*service.VelocityChart](m.Called(ctx, teamID))
}

func (m *performanceSvcMock) Burndown(ctx context.Context, sprintID *uint) (*service.BurndownChart, error) {
	return result[*service.BurndownChart](m.Called(ctx, sprintID))
}

func (m *performanceSvcMock) Completion(ctx context.Context, teamID *uint, period *service.DateRange) (*service.CompletionMetrics, error) {
	return result[*service.CompletionMetrics](m.Called(ctx, teamID, period))
}

type reportSvcMock struct{ mock.Mock }

var _ service.ReportService = (*reportSvcMock)(nil)

func (m *reportSvcMock) SprintSummary(ctx context.Context, sprintID uint) (*service.SprintSummaryReport, error) {
	return result[*service.SprintSummaryReport](m.Called(ctx, sprintID))
}

func (m *reportSvcMock) Velocity(ctx context.Context, teamID *uint, period *service.DateRange) (*service.VelocityReport, error) {
	return result[*service.VelocityReport](m.Called(ctx, teamID, period))
}

func (m *reportSvcMock) TeamPerformance(ctx context.Context, teamID uint, period *service.DateRange) (*service.TeamPerformanceReport, error) {
	return result[*service.TeamPerformanceReport](m.Called(ctx, teamID, period))
}

func (m *reportSvcMock) Burndown(ctx context.Context, sprintID uint) (*service.BurndownReport, error) {
	return result[*service.BurndownReport](m.Called(ctx, sprintID))
}

func (m *reportSvcMock) AvailableSprints(ctx context.Context, teamID *uint) ([]service.AvailableSprint, error) {
	return result[[]service.AvailableSprint](m.Called(ctx, teamID))
}

func (m *reportSvcMock) Custom(ctx context.Context, req service.CustomReportRequest) (any, error) {
	args := m.Called(ctx, req)
	return args.Get(0), args.Error(1)
}

type dashboardSvcMock struct{ mock.Mock }

var _ service.DashboardService = (*dashboardSvcMock)(nil)

func (m *dashboardSvcMock) ForUser(ctx context.Context, userID uint) (*service.Dashboard, error) {
	return result[*service.Dashboard](m.Called(ctx, userID))
}

type backlogSvcMock struct{ mock.Mock }

var _ service.BacklogService = (*backlogSvcMock)(nil)

func (m *backlogSvcMock) List(ctx context.Context) ([]domain.BacklogItem, error) {
	return result[[]domain.BacklogItem](m.Called(ctx))
}

func (m *backlogSvcMock) Create(ctx context.Context, req service.CreateBacklogItemRequest) (*domain.BacklogItem, error) {
	return result[*domain.BacklogItem](m.Called(ctx, req))
}

func (m *backlogSvcMock) Update(ctx context.Context, id uint, req service.UpdateBacklogItemRequest) (*domain.BacklogItem, error) {
	return result[*domain.BacklogItem](m.Called(ctx, id, req))
}

func (m *backlogSvcMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *backlogSvcMock) SprintTasks(ctx context.Context, sprintID uint) ([]domain.BacklogItem, error) {
	return result[[]domain.BacklogItem](m.Called(ctx, sprintID))
}

func (m *backlogSvcMock) CreateSprintTask(ctx context.Context, req service.CreateSprintTaskRequest) (*domain.BacklogItem, error) {
	return result[*domain.BacklogItem](m.Called(ctx, req))
}

type notificationSvcMock struct{ mock.Mock }

var _ service.NotificationService = (*notificationSvcMock)(nil)

func (m *notificationSvcMock) List(ctx context.Context, userID *uint) ([]domain.Notification, error) {
	return result[[]domain.Notification](m.Called(ctx, userID))
}

func (m *notificationSvcMock) Create(ctx context.Context, req service.CreateNotificationRequest) (*domain.Notification, error) {
	return result[*domain.Notification](m.Called(ctx, req))
}

func (m *notificationSvcMock) Update(ctx context.Context, id uint, req service.UpdateNotificationRequest) (*domain.Notification, error) {
	return result[*domain.Notification](m.Called(ctx, id, req))
}

func (m *notificationSvcMock) MarkRead(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *notificationSvcMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
