package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/blog-api/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db       *gorm.DB
	blogRepo *BlogRepo
	postRepo *PostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:       db,
		blogRepo: NewBlogRepo(db),
		postRepo: NewPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the connection pool can reach the server
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate brings the schema up to date with the models
func (d Database) Migrate() error {
	return models.Migrate(d.db)
}

type OpenOptions struct {
	DSN           string
	SlowThreshold time.Duration
	Logger        zerolog.Logger
}

// Open connects to Postgres and verifies the connection with a trivial query.
// Statement logging goes to opts.Logger.
func Open(opts OpenOptions) (*gorm.DB, error) {
	gormLogger := logger.New(
		&opts.Logger,
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}
