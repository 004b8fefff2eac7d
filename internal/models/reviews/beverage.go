package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// Beverage is a catalog entry reviews are written against.
type Beverage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name" validate:"required,min=2,max=255"`
	Category  string    `gorm:"size:20;not null;index" json:"category" validate:"required,oneof=wine cocktail spirit beer other"`
	Producer  string    `gorm:"size:255" json:"producer" validate:"omitempty,max=255"`
	ABV       float32   `gorm:"default:0" json:"abv" validate:"gte=0,lte=100"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Beverage) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// NewBeverage creates a catalog entry.
func NewBeverage(ctx context.Context, db *gorm.DB, name, category, producer string, abv float32) (*Beverage, error) {
	b := &Beverage{
		Name:     name,
		Category: category,
		Producer: producer,
		ABV:      abv,
	}
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create beverage")
	}
	return b, nil
}

// GetBeverage retrieves a beverage by id.
func GetBeverage(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Beverage, error) {
	var b Beverage
	if err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewNotFoundError("Beverage not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get beverage")
	}
	return &b, nil
}

// GetBeverages lists catalog entries with pagination and an optional category filter.
func GetBeverages(ctx context.Context, db *gorm.DB, page, limit int, category string) ([]Beverage, int64, error) {
	var beverages []Beverage
	var total int64

	query := db.WithContext(ctx).Model(&Beverage{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count beverages")
	}
	if err := query.Order("name asc").Offset((page - 1) * limit).Limit(limit).Find(&beverages).Error; err != nil {
		return nil, 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get beverages")
	}
	return beverages, total, nil
}
