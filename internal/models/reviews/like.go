package models

import (
	"time"

	"github.com/google/uuid"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"gorm.io/gorm"
)

// Like marks that one user liked one review. The (user, review) pair is
// unique; duplicates are rejected by the store's unique index.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair;index:idx_like_user" json:"user_id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair;index:idx_like_review" json:"review_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User   user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Review Review    `gorm:"foreignKey:ReviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
