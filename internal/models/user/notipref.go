package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// NotificationPreferences holds per-type delivery flags. A missing row means
// every in-app type is enabled and no email is sent.
type NotificationPreferences struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`

	// No column defaults here: false must round-trip as false, and the
	// enabled-by-default behavior lives in the constructor and the nil case.
	OnFollow  bool `json:"on_follow"`
	OnLike    bool `json:"on_like"`
	OnComment bool `json:"on_comment"`

	EmailOnFollow  bool `json:"email_on_follow"`
	EmailOnLike    bool `json:"email_on_like"`
	EmailOnComment bool `json:"email_on_comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (np *NotificationPreferences) BeforeCreate(tx *gorm.DB) error {
	if np.ID == uuid.Nil {
		np.ID = uuid.New()
	}
	return nil
}

// Allows reports whether in-app notifications of the given type are enabled.
// A nil receiver stands for the all-defaults preference row.
func (np *NotificationPreferences) Allows(ntype string) bool {
	if np == nil {
		return true
	}
	switch ntype {
	case NotificationFollow:
		return np.OnFollow
	case NotificationLike:
		return np.OnLike
	case NotificationComment:
		return np.OnComment
	default:
		return true
	}
}

// AllowsEmail reports whether email delivery is enabled for the given type.
func (np *NotificationPreferences) AllowsEmail(ntype string) bool {
	if np == nil {
		return false
	}
	switch ntype {
	case NotificationFollow:
		return np.EmailOnFollow
	case NotificationLike:
		return np.EmailOnLike
	case NotificationComment:
		return np.EmailOnComment
	default:
		return false
	}
}

// NewNotificationPreferences creates the preference row for a user.
func NewNotificationPreferences(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, userID uuid.UUID) (*NotificationPreferences, error) {
	np := &NotificationPreferences{
		UserID:    userID,
		OnFollow:  true,
		OnLike:    true,
		OnComment: true,
	}

	if err := db.WithContext(ctx).Create(np).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create notification preferences")
	}

	cachePreferences(ctx, rclient, np)
	return np, nil
}

// GetNotificationPreferencesByUser retrieves preferences by user id. Returns
// nil (not an error) when the user never customized anything.
func GetNotificationPreferencesByUser(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, userID uuid.UUID) (*NotificationPreferences, error) {
	key := "notif_prefs:user:" + userID.String()
	if rclient != nil {
		if cached, err := rclient.Get(ctx, key).Result(); err == nil {
			var np NotificationPreferences
			if err := json.Unmarshal([]byte(cached), &np); err == nil {
				return &np, nil
			}
		}
	}

	var np NotificationPreferences
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&np).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get notification preferences")
	}

	cachePreferences(ctx, rclient, &np)
	return &np, nil
}

// UpdateNotificationPreferences upserts the preference row for a user.
func UpdateNotificationPreferences(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, userID uuid.UUID, onFollow, onLike, onComment, emailFollow, emailLike, emailComment bool) (*NotificationPreferences, error) {
	np, err := GetNotificationPreferencesByUser(ctx, rclient, db, userID)
	if err != nil {
		return nil, err
	}
	if np == nil {
		np = &NotificationPreferences{UserID: userID}
	}

	np.OnFollow = onFollow
	np.OnLike = onLike
	np.OnComment = onComment
	np.EmailOnFollow = emailFollow
	np.EmailOnLike = emailLike
	np.EmailOnComment = emailComment

	if err := db.WithContext(ctx).Save(np).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to update notification preferences")
	}

	cachePreferences(ctx, rclient, np)
	return np, nil
}

func cachePreferences(ctx context.Context, rclient *storage.RedisClient, np *NotificationPreferences) {
	if rclient == nil {
		return
	}
	npJSON, err := json.Marshal(np)
	if err != nil {
		return
	}
	rclient.Set(ctx, "notif_prefs:user:"+np.UserID.String(), npJSON, 10*time.Minute)
}
