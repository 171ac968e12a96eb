package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/infra/database/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func commentFrom(m models.Comment) blog.CommentView {
	return blog.CommentView{
		ID:         m.ID,
		PostID:     m.PostID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		IsDeleted:  m.IsDeleted,
	}
}

func (r *CommentRepository) Create(ctx context.Context, postID, authorID, authorName, content string) (blog.CommentView, error) {
	comment := models.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return blog.CommentView{}, err
	}
	return commentFrom(comment), nil
}

// Get returns a comment regardless of deletion state. Deleted comments
// stay addressable so moderation is auditable.
func (r *CommentRepository) Get(ctx context.Context, id string) (blog.CommentView, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Take(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.CommentView{}, domain.NotFoundError{Resource: "comment"}
	}
	if err != nil {
		return blog.CommentView{}, err
	}
	return commentFrom(comment), nil
}

// SoftDelete marks a comment deleted without removing the row.
func (r *CommentRepository) SoftDelete(ctx context.Context, id string) (blog.CommentView, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Take(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.CommentView{}, domain.NotFoundError{Resource: "comment"}
	}
	if err != nil {
		return blog.CommentView{}, err
	}

	if !comment.IsDeleted {
		err = r.db.WithContext(ctx).Model(&comment).Update("is_deleted", true).Error
		if err != nil {
			return blog.CommentView{}, err
		}
		comment.IsDeleted = true
	}
	return commentFrom(comment), nil
}

// ListByPost pages through live comments of a post, oldest first. The
// total counts live comments only.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string, page, perPage int) (blog.CommentListing, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&total).Error
	if err != nil {
		return blog.CommentListing{}, err
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	if err != nil {
		return blog.CommentListing{}, err
	}

	items := make([]blog.CommentView, 0, len(comments))
	for _, m := range comments {
		items = append(items, commentFrom(m))
	}
	return blog.CommentListing{
		Items:   items,
		Total:   int(total),
		Page:    page,
		PerPage: perPage,
	}, nil
}
