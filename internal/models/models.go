package models

import (
	reviews "github.com/sipcircle/sipcircle/internal/models/reviews"
	user "github.com/sipcircle/sipcircle/internal/models/user"
)

// RegisterModels returns every entity in migration order: referenced tables
// first so the store can attach the cascade constraints.
func RegisterModels() []interface{} {
	return []interface{}{
		&user.User{},
		&user.Follow{},
		&user.Notification{},
		&user.NotificationPreferences{},
		&reviews.Beverage{},
		&reviews.Review{},
		&reviews.Like{},
		&reviews.Comment{},
	}
}

type (
	User                    = user.User
	Profile                 = user.Profile
	Follow                  = user.Follow
	Notification            = user.Notification
	NotificationPreferences = user.NotificationPreferences
	Beverage                = reviews.Beverage
	Review                  = reviews.Review
	Like                    = reviews.Like
	Comment                 = reviews.Comment
)

var (
	NewUser                    = user.NewUser
	GetUserBy                  = user.GetUserBy
	GetUserByID                = user.GetUserByID
	UpdateUser                 = user.UpdateUser
	DeleteUser                 = user.DeleteUser
	NewNotificationPreferences = user.NewNotificationPreferences
	NewBeverage                = reviews.NewBeverage
	GetBeverage                = reviews.GetBeverage
	GetBeverages               = reviews.GetBeverages
	NewReview                  = reviews.NewReview
	GetReview                  = reviews.GetReview
	GetReviews                 = reviews.GetReviews
	DeleteReview               = reviews.DeleteReview
)
