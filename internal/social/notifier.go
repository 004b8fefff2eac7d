package social

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"github.com/sipcircle/sipcircle/pkg/utils"
	"gorm.io/gorm"
)

// Notifier is the best-effort side channel of the engines. Notify never
// returns an error: a relationship or engagement mutation that already
// committed must not be failed by notification delivery.
type Notifier struct {
	db      *gorm.DB
	rclient *storage.RedisClient
	log     *logger.Logger
	email   *utils.EmailConfig
}

func NewNotifier(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger) *Notifier {
	return &Notifier{db: db, rclient: rclient, log: log}
}

// WithEmail enables the email delivery channel for recipients who opted in.
func (n *Notifier) WithEmail(cfg utils.EmailConfig) *Notifier {
	n.email = &cfg
	return n
}

// Notify records a notification for the recipient unless their preferences
// disable the type. All failures are logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, recipientID uuid.UUID, ntype, title, message string, data utils.Map) {
	prefs, err := user.GetNotificationPreferencesByUser(ctx, n.rclient, n.db, recipientID)
	if err != nil {
		n.warn(ctx, recipientID, ntype, "Failed to load notification preferences", err)
		return
	}
	if !prefs.Allows(ntype) {
		return
	}

	payload := "{}"
	if len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			payload = string(raw)
		}
	}

	notif := &user.Notification{
		UserID:  recipientID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := n.db.WithContext(ctx).Create(notif).Error; err != nil {
		n.warn(ctx, recipientID, ntype, "Failed to create notification", err)
		return
	}

	if n.email != nil && prefs.AllowsEmail(ntype) {
		recipient, err := user.GetUserByID(ctx, n.rclient, n.db, recipientID)
		if err != nil {
			n.warn(ctx, recipientID, ntype, "Failed to resolve notification recipient for email", err)
			return
		}
		if err := utils.SendNotificationEmail(ctx, *n.email, recipient.Email, recipient.Username, title, message, n.log); err != nil {
			n.warn(ctx, recipientID, ntype, "Failed to email notification", err)
		}
	}
}

func (n *Notifier) warn(ctx context.Context, recipientID uuid.UUID, ntype, msg string, err error) {
	if n.log == nil {
		return
	}
	n.log.Warn(ctx).WithMeta(utils.Map{
		"recipient": recipientID.String(),
		"type":      ntype,
		"error":     err.Error(),
	}).Logs(msg)
}
