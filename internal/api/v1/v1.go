package v1

import (
	"github.com/sipcircle/sipcircle/internal/config"
	"github.com/sipcircle/sipcircle/internal/social"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// Handlers bundles the dependencies every v1 route needs. The persistence
// handle and engines are injected once at startup; handlers hold no other
// state.
type Handlers struct {
	DB           *gorm.DB
	Redis        *storage.RedisClient
	Logger       *logger.Logger
	Cfg          *config.Config
	Validator    *utils.Validator
	Relationship *social.RelationshipEngine
	Engagement   *social.EngagementEngine
	Notifier     *social.Notifier
}

func NewHandlers(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger, cfg *config.Config) *Handlers {
	notifier := social.NewNotifier(db, rclient, log)
	if cfg != nil && cfg.SMTPHost != "" {
		notifier = notifier.WithEmail(utils.EmailConfig{
			SMTPHost:     cfg.SMTPHost,
			SMTPPort:     cfg.SMTPPort,
			SMTPUsername: cfg.SMTPUsername,
			SMTPPassword: cfg.SMTPPassword,
			AppURL:       cfg.AppURL,
			FromEmail:    cfg.FromEmail,
		})
	}

	return &Handlers{
		DB:           db,
		Redis:        rclient,
		Logger:       log,
		Cfg:          cfg,
		Validator:    utils.NewValidator(),
		Relationship: social.NewRelationshipEngine(db, rclient, log, notifier),
		Engagement:   social.NewEngagementEngine(db, rclient, log, notifier),
		Notifier:     notifier,
	}
}
