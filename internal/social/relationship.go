package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// RelationshipEngine manages directed follow edges between users.
type RelationshipEngine struct {
	db       *gorm.DB
	rclient  *storage.RedisClient
	log      *logger.Logger
	notifier *Notifier
}

func NewRelationshipEngine(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger, notifier *Notifier) *RelationshipEngine {
	return &RelationshipEngine{db: db, rclient: rclient, log: log, notifier: notifier}
}

// Follow creates the edge actor→target. Precondition order: self-follow,
// target existence, duplicate edge. The duplicate pre-check is an early exit
// only; the store's unique index settles races and maps to the same conflict.
func (e *RelationshipEngine) Follow(ctx context.Context, actorID, targetID uuid.UUID) (string, error) {
	if actorID == targetID {
		return "", utils.NewSelfActionError("Cannot follow yourself")
	}

	target, err := user.GetUserByID(ctx, e.rclient, e.db, targetID)
	if err != nil {
		return "", err
	}

	var existing user.Follow
	err = e.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", actorID, targetID).
		First(&existing).Error
	if err == nil {
		return "", utils.NewConflictError("Already following this user")
	}
	if err != gorm.ErrRecordNotFound {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check follow state")
	}

	edge := &user.Follow{FollowerID: actorID, FollowingID: targetID}
	if err := e.db.WithContext(ctx).Create(edge).Error; err != nil {
		if IsUniqueViolation(err) {
			return "", utils.NewConflictError("Already following this user")
		}
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to follow user")
	}

	actorName := "Someone"
	if actor, err := user.GetUserByID(ctx, e.rclient, e.db, actorID); err == nil {
		actorName = actor.DisplayName()
	}
	e.notifier.Notify(ctx, targetID,
		user.NotificationFollow,
		"New follower",
		fmt.Sprintf("%s started following you", actorName),
		utils.Map{"actor_id": actorID.String()},
	)

	return fmt.Sprintf("%s followed successfully", target.DisplayName()), nil
}

// Unfollow removes the edge actor→target. A missing edge is an explicit
// conflict, not a no-op, so clients learn about state drift.
func (e *RelationshipEngine) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) (string, error) {
	var edge user.Follow
	err := e.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", actorID, targetID).
		First(&edge).Error
	if err == gorm.ErrRecordNotFound {
		return "", utils.NewConflictError("Not following this user")
	}
	if err != nil {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check follow state")
	}

	if err := e.db.WithContext(ctx).Delete(&edge).Error; err != nil {
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to unfollow user")
	}

	return "Unfollowed successfully", nil
}

// IsFollowing reports whether the edge actor→target exists. Read-only.
func (e *RelationshipEngine) IsFollowing(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&user.Follow{}).
		Where("follower_id = ? AND following_id = ?", actorID, targetID).
		Count(&count).Error; err != nil {
		return false, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check follow state")
	}
	return count > 0, nil
}

// ListFollowers returns the public profiles of users following target,
// newest edge first. An empty page is a result, not an error.
func (e *RelationshipEngine) ListFollowers(ctx context.Context, targetID uuid.UUID, page, limit int) ([]user.Profile, Pagination, error) {
	return e.listEdges(ctx, "following_id", targetID, "Follower", page, limit)
}

// ListFollowing returns the public profiles of users the actor follows,
// newest edge first.
func (e *RelationshipEngine) ListFollowing(ctx context.Context, actorID uuid.UUID, page, limit int) ([]user.Profile, Pagination, error) {
	return e.listEdges(ctx, "follower_id", actorID, "Following", page, limit)
}

func (e *RelationshipEngine) listEdges(ctx context.Context, column string, id uuid.UUID, preload string, page, limit int) ([]user.Profile, Pagination, error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	var total int64
	if err := e.db.WithContext(ctx).Model(&user.Follow{}).
		Where(column+" = ?", id).Count(&total).Error; err != nil {
		return nil, Pagination{}, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count follow edges")
	}

	var edges []user.Follow
	if err := e.db.WithContext(ctx).
		Where(column+" = ?", id).
		Preload(preload).
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&edges).Error; err != nil {
		return nil, Pagination{}, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list follow edges")
	}

	profiles := make([]user.Profile, 0, len(edges))
	for _, edge := range edges {
		if preload == "Follower" {
			profiles = append(profiles, edge.Follower.Public())
		} else {
			profiles = append(profiles, edge.Following.Public())
		}
	}

	return profiles, paginate(page, limit, total), nil
}

// CountFollowers returns the number of users following target.
func (e *RelationshipEngine) CountFollowers(ctx context.Context, targetID uuid.UUID) (int64, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&user.Follow{}).
		Where("following_id = ?", targetID).Count(&count).Error; err != nil {
		return 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count followers")
	}
	return count, nil
}
