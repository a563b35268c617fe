package repository

import (
	"context"

	"gorm.io/gorm"

	"handson/internal/model"
)

// HelpPostRepository defines help-post and comment persistence operations.
type HelpPostRepository interface {
	Create(ctx context.Context, post *model.HelpPost) error
	FindByID(ctx context.Context, id uint) (*model.HelpPost, error)
	ListWithMeta(ctx context.Context) ([]model.HelpPostWithMeta, error)
	CreateComment(ctx context.Context, comment *model.HelpPostComment) error
	ListComments(ctx context.Context, postID uint) ([]model.HelpPostCommentView, error)
}

type helpPostRepository struct {
	db *gorm.DB
}

// NewHelpPostRepository creates a new help-post repository.
func NewHelpPostRepository(db *gorm.DB) HelpPostRepository {
	return &helpPostRepository{db: db}
}

// Create creates a new help post.
func (r *helpPostRepository) Create(ctx context.Context, post *model.HelpPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a help post by ID.
func (r *helpPostRepository) FindByID(ctx context.Context, id uint) (*model.HelpPost, error) {
	var post model.HelpPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListWithMeta returns all posts ordered urgent, medium, low, unspecified,
// newest first within a tier, with the requester's name and comment count.
func (r *helpPostRepository) ListWithMeta(ctx context.Context) ([]model.HelpPostWithMeta, error) {
	var rows []model.HelpPostWithMeta
	err := r.db.WithContext(ctx).Table("help_posts").
		Select(`help_posts.id, help_posts.created_by, users.name AS requester_name,
			help_posts.details, help_posts.location, help_posts.urgency_level, help_posts.created_at,
			(SELECT COUNT(*) FROM help_post_comments c WHERE c.help_post_id = help_posts.id) AS comment_count`).
		Joins("JOIN users ON users.id = help_posts.created_by").
		Order(`CASE help_posts.urgency_level
			WHEN 'urgent' THEN 1
			WHEN 'medium' THEN 2
			WHEN 'low' THEN 3
			ELSE 4 END,
			help_posts.created_at DESC, help_posts.id DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateComment appends one comment to a post's thread.
func (r *helpPostRepository) CreateComment(ctx context.Context, comment *model.HelpPostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListComments returns a post's comments oldest first, each with the
// commenter's display name. Comments whose author row is gone fall back to
// "Unknown User".
func (r *helpPostRepository) ListComments(ctx context.Context, postID uint) ([]model.HelpPostCommentView, error) {
	var rows []model.HelpPostCommentView
	err := r.db.WithContext(ctx).Table("help_post_comments").
		Select(`help_post_comments.id, help_post_comments.help_post_id, help_post_comments.user_id,
			COALESCE(users.name, 'Unknown User') AS commenter_name,
			help_post_comments.comment, help_post_comments.created_at`).
		Joins("LEFT JOIN users ON users.id = help_post_comments.user_id").
		Where("help_post_comments.help_post_id = ?", postID).
		Order("help_post_comments.created_at ASC, help_post_comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
