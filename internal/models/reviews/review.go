package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// Review is a user's rating and tasting notes for one beverage. Likes and
// comments hang off it and are removed by the store when the review goes.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_review_author" json:"author_id" validate:"required"`
	BeverageID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_beverage" json:"beverage_id" validate:"required"`
	Title      string    `gorm:"size:255;not null" json:"title" validate:"required,min=2,max=255"`
	Body       string    `gorm:"type:text;not null" json:"body" validate:"required,min=10"`
	Rating     int       `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author   user.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author" validate:"-"`
	Beverage Beverage  `gorm:"foreignKey:BeverageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"beverage" validate:"-"`
	Likes    []Like    `gorm:"foreignKey:ReviewID" json:"likes,omitempty" validate:"-"`
	Comments []Comment `gorm:"foreignKey:ReviewID" json:"comments,omitempty" validate:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewReview creates a review for a beverage.
func NewReview(ctx context.Context, db *gorm.DB, authorID, beverageID uuid.UUID, title, body string, rating int) (*Review, error) {
	if _, err := GetBeverage(ctx, db, beverageID); err != nil {
		return nil, err
	}

	r := &Review{
		AuthorID:   authorID,
		BeverageID: beverageID,
		Title:      title,
		Body:       body,
		Rating:     rating,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create review")
	}
	return r, nil
}

// GetReview retrieves a review by id with its author and beverage.
func GetReview(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Review, error) {
	var r Review
	if err := db.WithContext(ctx).Preload("Author").Preload("Beverage").Where("id = ?", id).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewNotFoundError("Review not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get review")
	}
	return &r, nil
}

// GetReviews lists reviews newest first, optionally scoped to a beverage or author.
func GetReviews(ctx context.Context, db *gorm.DB, page, limit int, beverageID, authorID uuid.UUID) ([]Review, int64, error) {
	var rs []Review
	var total int64

	query := db.WithContext(ctx).Model(&Review{})
	if beverageID != uuid.Nil {
		query = query.Where("beverage_id = ?", beverageID)
	}
	if authorID != uuid.Nil {
		query = query.Where("author_id = ?", authorID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count reviews")
	}
	if err := query.Preload("Author").Preload("Beverage").
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).
		Find(&rs).Error; err != nil {
		return nil, 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get reviews")
	}
	return rs, total, nil
}

// DeleteReview removes a review. The store cascades its likes and comments.
func DeleteReview(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var r Review
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NewNotFoundError("Review not found")
		}
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get review")
	}
	if err := db.WithContext(ctx).Delete(&r).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete review")
	}
	return nil
}
