package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/samuelhany-cpu/blogging-platform/internal/models"
)

type CommentRepo struct {
	DB *gorm.DB
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepo) ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *models.Comment) error {
	return r.DB.WithContext(ctx).Model(c).Update("content", c.Content).Error
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
