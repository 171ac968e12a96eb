package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/infra/database/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func postFrom(m models.Post) blog.PostView {
	return blog.PostView{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
	}
}

func postsFrom(ms []models.Post) []blog.PostView {
	views := make([]blog.PostView, 0, len(ms))
	for _, m := range ms {
		views = append(views, postFrom(m))
	}
	return views
}

func (r *PostRepository) Create(ctx context.Context, title, content, authorID, authorName string) (blog.PostView, error) {
	post := models.Post{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
	}
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return blog.PostView{}, err
	}
	return postFrom(post), nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (blog.PostView, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Take(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.PostView{}, domain.NotFoundError{Resource: "post"}
	}
	if err != nil {
		return blog.PostView{}, err
	}
	return postFrom(post), nil
}

func (r *PostRepository) Update(ctx context.Context, id, title, content string) (blog.PostView, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Take(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.PostView{}, domain.NotFoundError{Resource: "post"}
	}
	if err != nil {
		return blog.PostView{}, err
	}

	post.Title = title
	post.Content = content
	post.UpdatedAt = time.Now()
	err = r.db.WithContext(ctx).Model(&post).Updates(map[string]any{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}).Error
	if err != nil {
		return blog.PostView{}, err
	}
	return postFrom(post), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "post"}
	}
	return nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]blog.PostView, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return postsFrom(posts), nil
}

// ListRecent returns up to limit posts newest first, optionally filtered
// by a title substring.
func (r *PostRepository) ListRecent(ctx context.Context, limit int, title string) ([]blog.PostView, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if title != "" {
		query = query.Where("title ILIKE ?", "%"+title+"%")
	}
	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return postsFrom(posts), nil
}
