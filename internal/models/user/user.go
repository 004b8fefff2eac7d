package models

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Username string `gorm:"size:50;not null;unique" json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `gorm:"size:100;not null;unique" json:"email" validate:"required,email"`
	Password string `gorm:"size:255;not null" json:"-" validate:"required,min=6"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`

	Profile struct {
		Name      string `gorm:"size:100" json:"name" validate:"omitempty,max=100"`
		Bio       string `gorm:"type:text;size:255" json:"bio" validate:"omitempty,max=255"`
		AvatarURL string `gorm:"type:text;size:255" json:"avatar_url" validate:"omitempty,url"`
		Location  string `gorm:"size:100" json:"location" validate:"omitempty,max=100"`
	} `gorm:"embedded"`

	Stats struct {
		ReviewsCount  int       `gorm:"default:0" json:"reviews_count"`
		CommentsCount int       `gorm:"default:0" json:"comments_count"`
		LastSeen      time.Time `json:"last_seen"`
	} `gorm:"embedded"`

	Notifications           []Notification          `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
	NotificationPreferences NotificationPreferences `gorm:"foreignKey:UserID" json:"notification_preferences,omitempty"`
}

// Profile is the public projection of a user embedded in follower listings,
// comments and notifications. Credentials and email never leave through it.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio,omitempty"`
}

// Public returns the user's public profile projection.
func (u *User) Public() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Profile.Name,
		AvatarURL: u.Profile.AvatarURL,
		Bio:       u.Profile.Bio,
	}
}

// DisplayName prefers the profile name and falls back to the username.
func (u *User) DisplayName() string {
	if u.Profile.Name != "" {
		return u.Profile.Name
	}
	return u.Username
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserOption configures a User.
type UserOption func(*User)

// NewUser creates a new User and caches the public projection.
func NewUser(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, username, email, password string, opts ...UserOption) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "user creation canceled")
	}

	u := &User{
		Username: username,
		Email:    email,
		Password: password,
	}
	u.Stats.LastSeen = time.Now()

	for _, opt := range opts {
		opt(u)
	}

	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.NewConflictError("Username or email already exists")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create user in database")
	}

	CacheUser(ctx, rclient, u)

	return u, nil
}

// isUniqueViolation reports whether err is the store rejecting a duplicate
// username or email.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// GetUserBy retrieves a user by an arbitrary condition, with optional preloads.
func GetUserBy(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, condition string, args []interface{}, preload ...string) (*User, error) {
	var u User
	query := db.WithContext(ctx).Where(condition, args...)
	for _, p := range preload {
		if p != "" {
			query = query.Preload(p)
		}
	}
	if err := query.First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get user")
	}

	return &u, nil
}

// GetUserByID retrieves a user by primary key, consulting the cache first.
func GetUserByID(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, id uuid.UUID) (*User, error) {
	if rclient != nil {
		key := "user:" + id.String()
		if cached, err := rclient.Get(ctx, key).Result(); err == nil {
			var u User
			if err := json.Unmarshal([]byte(cached), &u); err == nil {
				return &u, nil
			}
		}
	}

	u, err := GetUserBy(ctx, rclient, db, "id = ?", []interface{}{id})
	if err != nil {
		return nil, err
	}

	CacheUser(ctx, rclient, u)
	return u, nil
}

// UpdateUser applies options to a user inside a transaction and refreshes cache.
func UpdateUser(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, id uuid.UUID, opts ...UserOption) (*User, error) {
	u, err := GetUserBy(ctx, rclient, db, "id = ?", []interface{}{id})
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(u)
	}

	if err := db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to update user")
	}

	CacheUser(ctx, rclient, u)
	return u, nil
}

// DeleteUser removes a user. Follow edges, likes, comments, reviews and
// notifications referencing the user go with it through the store's cascades.
func DeleteUser(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, id uuid.UUID) error {
	u, err := GetUserBy(ctx, rclient, db, "id = ?", []interface{}{id})
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(u).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete user")
	}

	if rclient != nil {
		rclient.Del(ctx, "user:"+id.String())
	}
	return nil
}

// CacheUser stores a user snapshot in Redis for ten minutes. Best effort.
func CacheUser(ctx context.Context, rclient *storage.RedisClient, u *User) {
	if rclient == nil {
		return
	}
	userJSON, err := json.Marshal(u)
	if err != nil {
		return
	}
	rclient.Set(ctx, "user:"+u.ID.String(), userJSON, 10*time.Minute)
}

// UpdateLastSeen refreshes the user's last seen timestamp.
func (u *User) UpdateLastSeen(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB) error {
	u.Stats.LastSeen = time.Now()
	if err := db.WithContext(ctx).Model(u).Update("last_seen", u.Stats.LastSeen).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to update last seen")
	}
	CacheUser(ctx, rclient, u)
	return nil
}
