package models

import (
	"time"

	"github.com/google/uuid"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"gorm.io/gorm"
)

// Comment belongs to exactly one review and one author. Creation time
// establishes the display order.
type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_review" json:"review_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_author" json:"author_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author user.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
	Review Review    `gorm:"foreignKey:ReviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
