package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

// SprintFilter narrows sprint listings. Zero values mean "no constraint".
type SprintFilter struct {
	TeamID    *uint
	StartFrom *time.Time
	EndBy     *time.Time
	// EndedBefore keeps only sprints whose end date is before the given time.
	EndedBefore *time.Time
	NewestFirst bool
}

// SprintRepository defines persistence operations for sprints.
type SprintRepository interface {
	Create(ctx context.Context, sprint *domain.Sprint) error
	FindByID(ctx context.Context, id uint) (*domain.Sprint, error)
	// FindDetailed preloads the team with members and the items with owners,
	// dependencies and completion records.
	FindDetailed(ctx context.Context, id uint) (*domain.Sprint, error)
	List(ctx context.Context, filter SprintFilter) ([]domain.Sprint, error)
	CurrentForTeam(ctx context.Context, teamID uint, now time.Time) (*domain.Sprint, error)
	MostRecentActive(ctx context.Context, now time.Time) (*domain.Sprint, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
	Update(ctx context.Context, sprint *domain.Sprint) error
	Delete(ctx context.Context, id uint) error
}

type gormSprintRepository struct {
	db *gorm.DB
}

func NewGormSprintRepository(db *gorm.DB) SprintRepository {
	return &gormSprintRepository{db: db}
}

func (r *gormSprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(sprint).Error)
}

func (r *gormSprintRepository) FindByID(ctx context.Context, id uint) (*domain.Sprint, error) {
	var sprint domain.Sprint
	if err := r.db.WithContext(ctx).Preload("Team").First(&sprint, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &sprint, nil
}

func (r *gormSprintRepository) FindDetailed(ctx context.Context, id uint) (*domain.Sprint, error) {
	var sprint domain.Sprint
	err := r.db.WithContext(ctx).
		Preload("Team.Members").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Owner").
		Preload("Items.Dependencies").
		Preload("Items.TaskCompletions").
		First(&sprint, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sprint, nil
}

func (r *gormSprintRepository) List(ctx context.Context, filter SprintFilter) ([]domain.Sprint, error) {
	q := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Owner")

	if filter.TeamID != nil {
		q = q.Where("team_id = ?", *filter.TeamID)
	}
	if filter.StartFrom != nil {
		q = q.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.EndBy != nil {
		q = q.Where("end_date <= ?", *filter.EndBy)
	}
	if filter.EndedBefore != nil {
		q = q.Where("end_date < ?", *filter.EndedBefore)
	}
	if filter.NewestFirst {
		q = q.Order("start_date DESC").Order("id DESC")
	} else {
		q = q.Order("start_date ASC").Order("id ASC")
	}

	var sprints []domain.Sprint
	if err := q.Find(&sprints).Error; err != nil {
		return nil, translateError(err)
	}
	return sprints, nil
}

// CurrentForTeam returns the earliest sprint of the team that has not ended.
func (r *gormSprintRepository) CurrentForTeam(ctx context.Context, teamID uint, now time.Time) (*domain.Sprint, error) {
	var sprint domain.Sprint
	err := r.db.WithContext(ctx).
		Preload("Items.TaskCompletions").
		Where("team_id = ? AND end_date >= ?", teamID, now).
		Order("start_date ASC").
		First(&sprint).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sprint, nil
}

func (r *gormSprintRepository) MostRecentActive(ctx context.Context, now time.Time) (*domain.Sprint, error) {
	var sprint domain.Sprint
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date DESC").
		First(&sprint).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sprint, nil
}

func (r *gormSprintRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Sprint{}).Count(&n).Error
	return n, translateError(err)
}

func (r *gormSprintRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Sprint{}).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Count(&n).Error
	return n, translateError(err)
}

func (r *gormSprintRepository) Update(ctx context.Context, sprint *domain.Sprint) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(sprint).Error)
}

func (r *gormSprintRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Sprint{}, id))
}
