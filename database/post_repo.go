package database

import (
	"context"
	"errors"

	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/sorting"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindByID returns the post with its blog, or nil without error when absent
func (r *PostRepo) FindByID(ctx context.Context, id uint64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Blog").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAll returns all posts ordered by id
func (r *PostRepo) FindAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Order("id").Find(&posts).Error
	return posts, err
}

// FindByIDs ignores ids that do not exist
func (r *PostRepo) FindByIDs(ctx context.Context, ids []uint64) ([]models.Post, error) {
	posts := []models.Post{}
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&posts).Error
	return posts, err
}

/*
FindByBlogID returns the posts of a blog sorted by orders. Each order names a Post
property, which is mapped to its column through models.SortableColumns. An unknown
property fails before any query runs.
*/
func (r *PostRepo) FindByBlogID(ctx context.Context, blogID uint64, orders []sorting.Order) ([]models.Post, error) {
	query := r.db.WithContext(ctx).Where("blog_id = ?", blogID)
	for _, order := range orders {
		column, ok := models.SortableColumns[order.Field]
		if !ok {
			return nil, errs.NewBadOrderingFieldError(order.Field, "Post")
		}
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   order.Direction == sorting.Desc,
		})
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// FindByExample matches posts on the non-zero fields of author and publishedOn
func (r *PostRepo) FindByExample(ctx context.Context, author string, publishedOn models.Date) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Blog").
		Where(&models.Post{Author: author, PublishedOn: publishedOn}).
		Order("id").
		Find(&posts).Error
	return posts, err
}

// Add inserts a new post and fills in its id
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	post.ID = 0
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// Save writes every column of an existing post
func (r *PostRepo) Save(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

// SaveAll replaces each post by id, inserting rows whose id is unused, in one transaction.
func (r *PostRepo) SaveAll(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range posts {
			if err := tx.Omit(clause.Associations).Save(&posts[i]).Error; err != nil {
				return err
			}
		}
		return syncSequence(tx, models.Post{}.TableName())
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post from the database by id
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *PostRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Post{}).Error
}

// DeleteByBlogID returns the number of posts removed
func (r *PostRepo) DeleteByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&models.Post{})
	return result.RowsAffected, result.Error
}

func (r *PostRepo) CountByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}
