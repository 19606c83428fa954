package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

type TaskCompletionRepository interface {
	Create(ctx context.Context, tc *domain.TaskCompletion) error
	FindByID(ctx context.Context, id uint) (*domain.TaskCompletion, error)
	List(ctx context.Context) ([]domain.TaskCompletion, error)
	Update(ctx context.Context, tc *domain.TaskCompletion) error
	Delete(ctx context.Context, id uint) error
}

type gormTaskCompletionRepository struct {
	db *gorm.DB
}

func NewGormTaskCompletionRepository(db *gorm.DB) TaskCompletionRepository {
	return &gormTaskCompletionRepository{db: db}
}

func (r *gormTaskCompletionRepository) Create(ctx context.Context, tc *domain.TaskCompletion) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(tc).Error)
}

func (r *gormTaskCompletionRepository) FindByID(ctx context.Context, id uint) (*domain.TaskCompletion, error) {
	var tc domain.TaskCompletion
	if err := r.db.WithContext(ctx).Preload("BacklogItem").First(&tc, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tc, nil
}

func (r *gormTaskCompletionRepository) List(ctx context.Context) ([]domain.TaskCompletion, error) {
	var out []domain.TaskCompletion
	if err := r.db.WithContext(ctx).Preload("BacklogItem").Order("id").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *gormTaskCompletionRepository) Update(ctx context.Context, tc *domain.TaskCompletion) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(tc).Error)
}

func (r *gormTaskCompletionRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.TaskCompletion{}, id))
}

type VelocityRepository interface {
	Create(ctx context.Context, m *domain.VelocityMetric) error
	FindByID(ctx context.Context, id uint) (*domain.VelocityMetric, error)
	List(ctx context.Context) ([]domain.VelocityMetric, error)
	// LatestForSprint returns the most recently recorded metric of a sprint.
	LatestForSprint(ctx context.Context, sprintID uint) (*domain.VelocityMetric, error)
	Update(ctx context.Context, m *domain.VelocityMetric) error
	Delete(ctx context.Context, id uint) error
}

type gormVelocityRepository struct {
	db *gorm.DB
}

func NewGormVelocityRepository(db *gorm.DB) VelocityRepository {
	return &gormVelocityRepository{db: db}
}

func (r *gormVelocityRepository) Create(ctx context.Context, m *domain.VelocityMetric) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error)
}

func (r *gormVelocityRepository) FindByID(ctx context.Context, id uint) (*domain.VelocityMetric, error) {
	var m domain.VelocityMetric
	if err := r.db.WithContext(ctx).Preload("Sprint").First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (r *gormVelocityRepository) List(ctx context.Context) ([]domain.VelocityMetric, error) {
	var out []domain.VelocityMetric
	if err := r.db.WithContext(ctx).Preload("Sprint").Order("id").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *gormVelocityRepository) LatestForSprint(ctx context.Context, sprintID uint) (*domain.VelocityMetric, error) {
	var m domain.VelocityMetric
	err := r.db.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Order("created_at DESC").Order("id DESC").
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (r *gormVelocityRepository) Update(ctx context.Context, m *domain.VelocityMetric) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error)
}

func (r *gormVelocityRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.VelocityMetric{}, id))
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	FindByID(ctx context.Context, id uint) (*domain.Notification, error)
	List(ctx context.Context, userID *uint) ([]domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error)
}

func (r *gormNotificationRepository) FindByID(ctx context.Context, id uint) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.WithContext(ctx).Preload("User").First(&n, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &n, nil
}

func (r *gormNotificationRepository) List(ctx context.Context, userID *uint) ([]domain.Notification, error) {
	q := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Order("id DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var out []domain.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *gormNotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(n).Error)
}

func (r *gormNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gormNotificationRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Notification{}, id))
}

// MetricsRepository records derived sprint metrics.
type MetricsRepository interface {
	// RecordSprintMetrics stores a velocity metric and a workload entry atomically.
	RecordSprintMetrics(ctx context.Context, m *domain.VelocityMetric, w *domain.WorkloadDistribution) error
	ListRecommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error)
}

type gormMetricsRepository struct {
	db *gorm.DB
}

func NewGormMetricsRepository(db *gorm.DB) MetricsRepository {
	return &gormMetricsRepository{db: db}
}

func (r *gormMetricsRepository) RecordSprintMetrics(ctx context.Context, m *domain.VelocityMetric, w *domain.WorkloadDistribution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Create(w).Error)
	})
}

func (r *gormMetricsRepository) ListRecommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error) {
	var out []domain.SprintRecommendation
	err := r.db.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
