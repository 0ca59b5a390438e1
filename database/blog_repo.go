package database

import (
	"context"
	"errors"

	"github.com/rpupo63/blog-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// FindByID returns nil without error when no blog has the id
func (r *BlogRepo) FindByID(ctx context.Context, id uint64) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindAll returns all blogs ordered by id
func (r *BlogRepo) FindAll(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.WithContext(ctx).Order("id").Find(&blogs).Error
	return blogs, err
}

// FindByTitle matches the title exactly
func (r *BlogRepo) FindByTitle(ctx context.Context, title string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("blog_title = ?", title).Take(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Add inserts a new blog and fills in its id
func (r *BlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	blog.ID = 0
	return r.db.WithContext(ctx).Create(blog).Error
}

// Save writes every column of an existing blog
func (r *BlogRepo) Save(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

// SaveAll replaces each blog by id, inserting rows whose id is unused, in one transaction.
func (r *BlogRepo) SaveAll(ctx context.Context, blogs []models.Blog) ([]models.Blog, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range blogs {
			if err := tx.Save(&blogs[i]).Error; err != nil {
				return err
			}
		}
		return syncSequence(tx, models.Blog{}.TableName())
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// Delete removes a blog by id
func (r *BlogRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error
}

func (r *BlogRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Blog{}).Error
}

func (r *BlogRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&count).Error
	return count, err
}

// syncSequence moves the table's id sequence past rows inserted with explicit ids.
func syncSequence(tx *gorm.DB, table string) error {
	return tx.Exec(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM ?), 1))",
		table, clause.Table{Name: table},
	).Error
}
