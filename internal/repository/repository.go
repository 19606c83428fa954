// Package repository holds the GORM-backed persistence for every entity.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Repositories bundles every repository built on one connection.
type Repositories struct {
	Users           UserRepository
	Teams           TeamRepository
	Sprints         SprintRepository
	Backlog         BacklogRepository
	TaskCompletions TaskCompletionRepository
	Velocity        VelocityRepository
	Notifications   NotificationRepository
	Metrics         MetricsRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewGormUserRepository(db),
		Teams:           NewGormTeamRepository(db),
		Sprints:         NewGormSprintRepository(db),
		Backlog:         NewGormBacklogRepository(db),
		TaskCompletions: NewGormTaskCompletionRepository(db),
		Velocity:        NewGormVelocityRepository(db),
		Notifications:   NewGormNotificationRepository(db),
		Metrics:         NewGormMetricsRepository(db),
	}
}

// translateError maps driver and ORM errors onto domain sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.Conflictf("record already exists (%s)", pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return domain.Invalidf("referenced record does not exist (%s)", pgErr.ConstraintName)
		case pgCheckViolation:
			return domain.Invalidf("constraint violated (%s)", pgErr.ConstraintName)
		}
	}
	return err
}

// deleteResult reports ErrNotFound when nothing was removed.
func deleteResult(res *gorm.DB) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
