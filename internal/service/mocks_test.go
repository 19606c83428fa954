package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/planning"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type userRepoMock struct{ mock.Mock }

var _ repository.UserRepository = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *userRepoMock) ListWithoutTeam(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *userRepoMock) ListWithOwnedItems(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *userRepoMock) FirstInTeam(ctx context.Context, teamID uint) (*domain.User, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) SetTeam(ctx context.Context, userID uint, teamID *uint) error {
	return m.Called(ctx, userID, teamID).Error(0)
}

func (m *userRepoMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type teamRepoMock struct{ mock.Mock }

var _ repository.TeamRepository = (*teamRepoMock)(nil)

func (m *teamRepoMock) Create(ctx context.Context, team *domain.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *teamRepoMock) FindByID(ctx context.Context, id uint) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) FindWithMembers(ctx context.Context, id uint) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) FindWithWork(ctx context.Context, id uint) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) List(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *teamRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *teamRepoMock) Update(ctx context.Context, team *domain.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *teamRepoMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type sprintRepoMock struct{ mock.Mock }

var _ repository.SprintRepository = (*sprintRepoMock)(nil)

func (m *sprintRepoMock) Create(ctx context.Context, sprint *domain.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *sprintRepoMock) FindByID(ctx context.Context, id uint) (*domain.Sprint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *sprintRepoMock) FindDetailed(ctx context.Context, id uint) (*domain.Sprint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *sprintRepoMock) List(ctx context.Context, filter repository.SprintFilter) ([]domain.Sprint, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sprint), args.Error(1)
}

func (m *sprintRepoMock) CurrentForTeam(ctx context.Context, teamID uint, now time.Time) (*domain.Sprint, error) {
	args := m.Called(ctx, teamID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *sprintRepoMock) MostRecentActive(ctx context.Context, now time.Time) (*domain.Sprint, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *sprintRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *sprintRepoMock) CountActive(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *sprintRepoMock) Update(ctx context.Context, sprint *domain.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *sprintRepoMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type backlogRepoMock struct{ mock.Mock }

var _ repository.BacklogRepository = (*backlogRepoMock)(nil)

func (m *backlogRepoMock) Create(ctx context.Context, item *domain.BacklogItem, dependencyIDs []uint) error {
	return m.Called(ctx, item, dependencyIDs).Error(0)
}

func (m *backlogRepoMock) FindByID(ctx context.Context, id uint) (*domain.BacklogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BacklogItem), args.Error(1)
}

func (m *backlogRepoMock) List(ctx context.Context, filter repository.ItemFilter) ([]domain.BacklogItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BacklogItem), args.Error(1)
}

func (m *backlogRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *backlogRepoMock) CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *backlogRepoMock) Update(ctx context.Context, item *domain.BacklogItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *backlogRepoMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *backlogRepoMock) SavePriorities(ctx context.Context, orderedIDs []uint) error {
	return m.Called(ctx, orderedIDs).Error(0)
}

func (m *backlogRepoMock) SavePlan(ctx context.Context, orderedIDs []uint, recs []domain.SprintRecommendation) error {
	return m.Called(ctx, orderedIDs, recs).Error(0)
}

type velocityRepoMock struct{ mock.Mock }

var _ repository.VelocityRepository = (*velocityRepoMock)(nil)

func (m *velocityRepoMock) Create(ctx context.Context, v *domain.VelocityMetric) error {
	return m.Called(ctx, v).Error(0)
}

func (m *velocityRepoMock) FindByID(ctx context.Context, id uint) (*domain.VelocityMetric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VelocityMetric), args.Error(1)
}

func (m *velocityRepoMock) List(ctx context.Context) ([]domain.VelocityMetric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VelocityMetric), args.Error(1)
}

func (m *velocityRepoMock) LatestForSprint(ctx context.Context, sprintID uint) (*domain.VelocityMetric, error) {
	args := m.Called(ctx, sprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VelocityMetric), args.Error(1)
}

func (m *velocityRepoMock) Update(ctx context.Context, v *domain.VelocityMetric) error {
	return m.Called(ctx, v).Error(0)
}

func (m *velocityRepoMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type metricsRepoMock struct{ mock.Mock }

var _ repository.MetricsRepository = (*metricsRepoMock)(nil)

func (m *metricsRepoMock) RecordSprintMetrics(ctx context.Context, v *domain.VelocityMetric, w *domain.WorkloadDistribution) error {
	return m.Called(ctx, v, w).Error(0)
}

func (m *metricsRepoMock) ListRecommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error) {
	args := m.Called(ctx, sprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SprintRecommendation), args.Error(1)
}

type runnerMock struct{ mock.Mock }

var _ planning.Runner = (*runnerMock)(nil)

func (m *runnerMock) Predict(ctx context.Context, in planning.ModelInput) (*planning.ModelOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.ModelOutput), args.Error(1)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }
