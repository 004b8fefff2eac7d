package social

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	reviews "github.com/sipcircle/sipcircle/internal/models/reviews"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

const maxCommentLength = 1000

// CreateComment validates and stores a comment on a review.
//
// Validation runs in a fixed order and short-circuits: review id presence,
// trimmed-content emptiness, then the length cap on the RAW content. The raw
// cap mirrors long-standing client behavior; trimming before the cap would
// shift the boundary and is deliberately not done. The stored content is the
// trimmed form.
func (e *EngagementEngine) CreateComment(ctx context.Context, actorID, reviewID uuid.UUID, content string) (*reviews.Comment, error) {
	if reviewID == uuid.Nil {
		return nil, utils.NewValidationError("Review ID is required")
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, utils.NewValidationError("Comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, utils.NewValidationError("Comment too long (max 1000 characters)")
	}

	review, err := reviews.GetReview(ctx, e.db, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &reviews.Comment{
		ReviewID: reviewID,
		AuthorID: actorID,
		Content:  trimmed,
	}
	if err := e.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create comment")
	}

	if err := e.db.WithContext(ctx).Preload("Author").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to load created comment")
	}

	if review.AuthorID != actorID {
		e.notifier.Notify(ctx, review.AuthorID,
			user.NotificationComment,
			"New comment",
			fmt.Sprintf("%s commented on your review %q", comment.Author.DisplayName(), review.Title),
			utils.Map{
				"actor_id":   actorID.String(),
				"review_id":  reviewID.String(),
				"comment_id": comment.ID.String(),
			},
		)
	}

	return comment, nil
}

// ListComments returns a review's comments in thread reading order (oldest
// first) with pagination metadata. The review must exist; an empty page is a
// result, not an error.
func (e *EngagementEngine) ListComments(ctx context.Context, reviewID uuid.UUID, page, limit int) ([]reviews.Comment, Pagination, error) {
	if _, err := reviews.GetReview(ctx, e.db, reviewID); err != nil {
		return nil, Pagination{}, err
	}

	page = clampPage(page)
	limit = clampLimit(limit)

	var total int64
	if err := e.db.WithContext(ctx).Model(&reviews.Comment{}).
		Where("review_id = ?", reviewID).Count(&total).Error; err != nil {
		return nil, Pagination{}, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count comments")
	}

	var comments []reviews.Comment
	if err := e.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Preload("Author").
		Order("created_at asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, Pagination{}, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list comments")
	}

	return comments, paginate(page, limit, total), nil
}
