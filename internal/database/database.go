package database

import (
	"context"
	"embed"
	"fmt"
	"strconv"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/anika2711garg/Planix-sub000/internal/config"
	"github.com/anika2711garg/Planix-sub000/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Service exposes the pooled connection together with lifecycle helpers.
type Service interface {
	Health() map[string]string
	Migrate(ctx context.Context) error
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	dbName string
}

// New opens the pool described by cfg and applies its limits.
func New(cfg config.PostgresConfig, log *zap.SugaredLogger) (Service, error) {
	log = log.Named("database")

	gormLog := gormlogger.New(
		logger.StdLog(log),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Infow("database connected", "host", cfg.Host, "port", cfg.Port, "db", cfg.DBName)
	return &service{db: db, log: log, dbName: cfg.DBName}, nil
}

// NewFromGorm wraps an already opened connection.
func NewFromGorm(db *gorm.DB, log *zap.SugaredLogger) Service {
	return &service{db: db, log: log.Named("database")}
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Migrate applies the embedded goose migrations.
func (s *service) Migrate(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(s.log.Desugar()))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	s.log.Infow("migrations applied", "version", version)
	return nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("failed to get underlying DB for health check: %v", err)
		s.log.Errorw("health check", "error", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		s.log.Warnw("db down", "error", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	switch {
	case dbStats.MaxLifetimeClosed > int64(dbStats.OpenConnections)/2:
		stats["message"] = "Many connections are being closed due to max lifetime, consider increasing ConnMaxLifetime."
	case dbStats.MaxIdleClosed > int64(dbStats.OpenConnections)/2 && dbStats.OpenConnections > dbStats.Idle:
		stats["message"] = "Many idle connections are being closed, consider revising the pool settings."
	case dbStats.WaitCount > 1000:
		stats["message"] = "The database has a high number of wait events."
	case dbStats.OpenConnections > 80:
		stats["message"] = "The database is experiencing heavy load."
	}

	return stats
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	s.log.Infow("closing connection pool", "db", s.dbName)
	return sqlDB.Close()
}
