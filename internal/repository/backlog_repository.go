package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

// ItemOrder selects how item listings are sorted.
type ItemOrder int

const (
	OrderByID ItemOrder = iota
	OrderByCreated
	OrderByPriorityDesc
	OrderByPriorityAsc
)

// ItemFilter narrows backlog listings.
type ItemFilter struct {
	// SprintID selects items of one sprint. When Unassigned is set the
	// listing is restricted to items that belong to no sprint instead.
	SprintID    *uint
	Unassigned  bool
	TeamID      *uint
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
	Order       ItemOrder
}

// BacklogRepository defines persistence operations for backlog items.
type BacklogRepository interface {
	Create(ctx context.Context, item *domain.BacklogItem, dependencyIDs []uint) error
	FindByID(ctx context.Context, id uint) (*domain.BacklogItem, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.BacklogItem, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error)
	Update(ctx context.Context, item *domain.BacklogItem) error
	Delete(ctx context.Context, id uint) error
	// SavePriorities stores priority = index+1 for the ordered ids atomically.
	SavePriorities(ctx context.Context, orderedIDs []uint) error
	// SavePlan stores position = index for the ordered ids together with the
	// recommendations, atomically.
	SavePlan(ctx context.Context, orderedIDs []uint, recs []domain.SprintRecommendation) error
}

type gormBacklogRepository struct {
	db *gorm.DB
}

func NewGormBacklogRepository(db *gorm.DB) BacklogRepository {
	return &gormBacklogRepository{db: db}
}

func (r *gormBacklogRepository) Create(ctx context.Context, item *domain.BacklogItem, dependencyIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(dependencyIDs) > 0 {
			ids := uniqueIDs(dependencyIDs)
			var deps []domain.BacklogItem
			if err := tx.Where("id IN ?", ids).Find(&deps).Error; err != nil {
				return translateError(err)
			}
			if len(deps) != len(ids) {
				return domain.Invalidf("unknown dependency id")
			}
			item.Dependencies = deps
		}
		return translateError(tx.Omit("Owner", "Sprint", "TaskCompletions", "Dependencies.*").Create(item).Error)
	})
}

func (r *gormBacklogRepository) FindByID(ctx context.Context, id uint) (*domain.BacklogItem, error) {
	var item domain.BacklogItem
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Sprint").
		Preload("Dependencies").
		First(&item, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *gormBacklogRepository) List(ctx context.Context, filter ItemFilter) ([]domain.BacklogItem, error) {
	q := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Sprint").
		Preload("Dependencies")

	switch {
	case filter.Unassigned:
		q = q.Where("backlog_items.sprint_id IS NULL")
	case filter.SprintID != nil:
		q = q.Where("backlog_items.sprint_id = ?", *filter.SprintID)
	}
	if filter.TeamID != nil {
		q = q.Joins("JOIN sprints ON sprints.id = backlog_items.sprint_id").
			Where("sprints.team_id = ?", *filter.TeamID)
	}
	if filter.UpdatedFrom != nil {
		q = q.Where("backlog_items.updated_at >= ?", *filter.UpdatedFrom)
	}
	if filter.UpdatedTo != nil {
		q = q.Where("backlog_items.updated_at <= ?", *filter.UpdatedTo)
	}

	switch filter.Order {
	case OrderByCreated:
		q = q.Order("backlog_items.created_at ASC").Order("backlog_items.id ASC")
	case OrderByPriorityDesc:
		q = q.Order("backlog_items.priority DESC").Order("backlog_items.id ASC")
	case OrderByPriorityAsc:
		q = q.Order("backlog_items.priority ASC").Order("backlog_items.created_at ASC")
	default:
		q = q.Order("backlog_items.id ASC")
	}

	var items []domain.BacklogItem
	if err := q.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (r *gormBacklogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BacklogItem{}).Count(&n).Error
	return n, translateError(err)
}

func (r *gormBacklogRepository) CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BacklogItem{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, translateError(err)
}

func (r *gormBacklogRepository) Update(ctx context.Context, item *domain.BacklogItem) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

func (r *gormBacklogRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.BacklogItem{}, id))
}

func (r *gormBacklogRepository) SavePriorities(ctx context.Context, orderedIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := updateColumn(tx, id, "priority", i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormBacklogRepository) SavePlan(ctx context.Context, orderedIDs []uint, recs []domain.SprintRecommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := updateColumn(tx, id, "position", i); err != nil {
				return err
			}
		}
		if len(recs) > 0 {
			if err := tx.Create(&recs).Error; err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

func updateColumn(tx *gorm.DB, id uint, column string, value int) error {
	res := tx.Model(&domain.BacklogItem{}).Where("id = ?", id).Updates(map[string]any{
		column:       value,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundf("backlog item %d not found", id)
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
