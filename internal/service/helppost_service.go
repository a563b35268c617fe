package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"handson/internal/cache"
	apperrors "handson/internal/errors"
	"handson/internal/model"
	"handson/internal/repository"
)

const helpPostCacheTTL = 5 * time.Minute

// unknownUserName is shown for comments whose author row cannot be resolved.
const unknownUserName = "Unknown User"

// HelpPostDetail is a help post with its full comment thread.
type HelpPostDetail struct {
	Post     model.HelpPost              `json:"post"`
	Comments []model.HelpPostCommentView `json:"comments"`
}

// HelpPostService maintains help posts and their append-only comment threads.
type HelpPostService interface {
	CreateHelpPost(ctx context.Context, post *model.HelpPost) (*model.HelpPost, error)
	ListHelpPosts(ctx context.Context) ([]model.HelpPostWithMeta, error)
	GetHelpPost(ctx context.Context, id uint) (*HelpPostDetail, error)
	AddComment(ctx context.Context, postID, userID uint, comment string) (*model.HelpPostCommentView, error)
}

type helpPostService struct {
	helpPostRepo repository.HelpPostRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewHelpPostService creates a new help-post service.
func NewHelpPostService(helpPostRepo repository.HelpPostRepository, userRepo repository.UserRepository, cache *cache.Client) HelpPostService {
	return &helpPostService{
		helpPostRepo: helpPostRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func (s *helpPostService) cacheKey(id uint) string {
	return fmt.Sprintf("help_post:%d", id)
}

// CreateHelpPost inserts a new post. The urgency level is stored verbatim;
// anything outside urgent/medium/low simply ranks last in listings.
func (s *helpPostService) CreateHelpPost(ctx context.Context, post *model.HelpPost) (*model.HelpPost, error) {
	if err := s.helpPostRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListHelpPosts returns all posts ordered by urgency rank then recency.
func (s *helpPostService) ListHelpPosts(ctx context.Context) ([]model.HelpPostWithMeta, error) {
	return s.helpPostRepo.ListWithMeta(ctx)
}

// GetHelpPost retrieves a post and its comments, oldest first, with caching.
func (s *helpPostService) GetHelpPost(ctx context.Context, id uint) (*HelpPostDetail, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached HelpPostDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.helpPostRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHelpPostNotFound
		}
		return nil, err
	}

	comments, err := s.helpPostRepo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &HelpPostDetail{Post: *post, Comments: comments}

	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, helpPostCacheTTL)
	}

	return detail, nil
}

// AddComment appends one comment to the post's thread and returns it
// decorated with the commenter's display name.
func (s *helpPostService) AddComment(ctx context.Context, postID, userID uint, comment string) (*model.HelpPostCommentView, error) {
	if _, err := s.helpPostRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHelpPostNotFound
		}
		return nil, err
	}

	row := &model.HelpPostComment{
		HelpPostID: postID,
		UserID:     userID,
		Comment:    comment,
	}
	if err := s.helpPostRepo.CreateComment(ctx, row); err != nil {
		return nil, err
	}

	commenterName := unknownUserName
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		commenterName = user.Name
	}

	// Invalidate the cached thread
	_ = s.cache.Delete(ctx, s.cacheKey(postID))

	return &model.HelpPostCommentView{
		ID:            row.ID,
		HelpPostID:    row.HelpPostID,
		UserID:        row.UserID,
		CommenterName: commenterName,
		Comment:       row.Comment,
		CreatedAt:     row.CreatedAt,
	}, nil
}
