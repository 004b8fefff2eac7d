package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	reviews "github.com/sipcircle/sipcircle/internal/models/reviews"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// EngagementEngine manages like edges and comments on reviews.
type EngagementEngine struct {
	db       *gorm.DB
	rclient  *storage.RedisClient
	log      *logger.Logger
	notifier *Notifier
}

func NewEngagementEngine(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger, notifier *Notifier) *EngagementEngine {
	return &EngagementEngine{db: db, rclient: rclient, log: log, notifier: notifier}
}

// Like creates the edge actor×review. The duplicate pre-check is advisory;
// the unique index settles concurrent likes. Self-likes succeed but never
// notify.
func (e *EngagementEngine) Like(ctx context.Context, actorID, reviewID uuid.UUID) (string, error) {
	review, err := reviews.GetReview(ctx, e.db, reviewID)
	if err != nil {
		return "", err
	}

	var existing reviews.Like
	err = e.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", actorID, reviewID).
		First(&existing).Error
	if err == nil {
		return "", utils.NewConflictError("Already liked this review")
	}
	if err != gorm.ErrRecordNotFound {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check like state")
	}

	edge := &reviews.Like{UserID: actorID, ReviewID: reviewID}
	if err := e.db.WithContext(ctx).Create(edge).Error; err != nil {
		if IsUniqueViolation(err) {
			return "", utils.NewConflictError("Already liked this review")
		}
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to like review")
	}

	if review.AuthorID != actorID {
		actorName := "Someone"
		if actor, err := user.GetUserByID(ctx, e.rclient, e.db, actorID); err == nil {
			actorName = actor.DisplayName()
		}
		e.notifier.Notify(ctx, review.AuthorID,
			user.NotificationLike,
			"New like",
			fmt.Sprintf("%s liked your review %q", actorName, review.Title),
			utils.Map{"actor_id": actorID.String(), "review_id": reviewID.String()},
		)
	}

	return "Review liked successfully", nil
}

// Unlike removes the edge actor×review. A missing edge is a conflict.
func (e *EngagementEngine) Unlike(ctx context.Context, actorID, reviewID uuid.UUID) (string, error) {
	var edge reviews.Like
	err := e.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", actorID, reviewID).
		First(&edge).Error
	if err == gorm.ErrRecordNotFound {
		return "", utils.NewConflictError("Not liked this review")
	}
	if err != nil {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check like state")
	}

	if err := e.db.WithContext(ctx).Delete(&edge).Error; err != nil {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to unlike review")
	}

	return "Review unliked successfully", nil
}

// HasLiked reports whether the actor liked the review. Read-only.
func (e *EngagementEngine) HasLiked(ctx context.Context, actorID, reviewID uuid.UUID) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&reviews.Like{}).
		Where("user_id = ? AND review_id = ?", actorID, reviewID).
		Count(&count).Error; err != nil {
		return false, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check like state")
	}
	return count > 0, nil
}

// LikeCount returns the number of like edges on a review.
func (e *EngagementEngine) LikeCount(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&reviews.Like{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error; err != nil {
		return 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count likes")
	}
	return count, nil
}
