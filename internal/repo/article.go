package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/samuelhany-cpu/blogging-platform/internal/models"
)

type ArticleRepo struct {
	DB *gorm.DB
}

func (r *ArticleRepo) Create(ctx context.Context, a *models.Article) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *ArticleRepo) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.DB.WithContext(ctx).Model(&models.Article{}).
		Select("articles.*, users.username AS author").
		Joins("LEFT JOIN users ON users.id = articles.user_id").
		Where("articles.id = ?", id).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepo) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.DB.WithContext(ctx).Model(&models.Article{}).
		Select("articles.*, users.username AS author").
		Joins("LEFT JOIN users ON users.id = articles.user_id").
		Order("articles.created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *ArticleRepo) ListByUser(ctx context.Context, userID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *ArticleRepo) Update(ctx context.Context, a *models.Article) error {
	return r.DB.WithContext(ctx).Model(a).
		Updates(map[string]any{
			"title":   a.Title,
			"content": a.Content,
			"tags":    a.Tags,
		}).Error
}

func (r *ArticleRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Article{}, id).Error
}
