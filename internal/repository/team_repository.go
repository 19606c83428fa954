package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

// TeamRepository defines persistence operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	FindByID(ctx context.Context, id uint) (*domain.Team, error)
	FindWithMembers(ctx context.Context, id uint) (*domain.Team, error)
	// FindWithWork loads members with their owned items and sprints with
	// their items, for performance reporting.
	FindWithWork(ctx context.Context, id uint) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id uint) error
}

type gormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) TeamRepository {
	return &gormTeamRepository{db: db}
}

func (r *gormTeamRepository) Create(ctx context.Context, team *domain.Team) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error)
}

func (r *gormTeamRepository) FindByID(ctx context.Context, id uint) (*domain.Team, error) {
	var team domain.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &team, nil
}

func (r *gormTeamRepository) FindWithMembers(ctx context.Context, id uint) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("username ASC") }).
		First(&team, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &team, nil
}

func (r *gormTeamRepository) FindWithWork(ctx context.Context, id uint) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Members.OwnedItems.Sprint").
		Preload("Sprints", func(db *gorm.DB) *gorm.DB { return db.Order("start_date ASC") }).
		Preload("Sprints.Items").
		First(&team, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &team, nil
}

func (r *gormTeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Sprints").
		Order("id").
		Find(&teams).Error
	if err != nil {
		return nil, translateError(err)
	}
	return teams, nil
}

func (r *gormTeamRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Team{}).Count(&n).Error
	return n, translateError(err)
}

func (r *gormTeamRepository) Update(ctx context.Context, team *domain.Team) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(team).Error)
}

func (r *gormTeamRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Team{}, id))
}
