package social

import (
	"context"
	"strings"
	"testing"

	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

func TestNotifyPersistsNotification(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	n := NewNotifier(db, nil, log)
	recipient := seedUser(t, db, "recipient")

	n.Notify(context.Background(), recipient.ID, user.NotificationFollow,
		"New follower", "alice started following you",
		utils.Map{"actor_id": "abc"})

	var notif user.Notification
	if err := db.Where("user_id = ?", recipient.ID).First(&notif).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notif.Type != user.NotificationFollow {
		t.Errorf("type = %q, want %q", notif.Type, user.NotificationFollow)
	}
	if notif.Title != "New follower" || notif.Message != "alice started following you" {
		t.Errorf("unexpected title/message: %q / %q", notif.Title, notif.Message)
	}
	if notif.IsRead {
		t.Error("new notification should be unread")
	}
	if !strings.Contains(notif.Data, `"actor_id":"abc"`) {
		t.Errorf("data = %q, want JSON payload with actor_id", notif.Data)
	}
}

func TestNotifyEmptyDataDefaultsToEmptyObject(t *testing.T) {
	db := newTestDB(t)
	n := NewNotifier(db, nil, newTestLogger(t))
	recipient := seedUser(t, db, "recipient")

	n.Notify(context.Background(), recipient.ID, user.NotificationSystem,
		"Welcome", "Thanks for joining", nil)

	var notif user.Notification
	if err := db.Where("user_id = ?", recipient.ID).First(&notif).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notif.Data != "{}" {
		t.Errorf("data = %q, want empty JSON object", notif.Data)
	}
}

func TestNotifyRespectsPreferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	n := NewNotifier(db, nil, newTestLogger(t))
	recipient := seedUser(t, db, "recipient")

	// Follow notifications off, like notifications on.
	if _, err := user.UpdateNotificationPreferences(ctx, nil, db, recipient.ID,
		false, true, false, false, false, false); err != nil {
		t.Fatalf("update preferences: %v", err)
	}

	n.Notify(ctx, recipient.ID, user.NotificationFollow, "New follower", "x", nil)
	if got := countNotifications(t, db, recipient.ID); got != 0 {
		t.Fatalf("disabled type produced %d notifications, want 0", got)
	}

	n.Notify(ctx, recipient.ID, user.NotificationLike, "New like", "x", nil)
	if got := countNotifications(t, db, recipient.ID); got != 1 {
		t.Fatalf("enabled type produced %d notifications, want 1", got)
	}
}

// A user with no preference row gets every in-app type, and a type the
// preference row does not know about passes through.
func TestNotifyDefaultsWhenNoPreferenceRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	n := NewNotifier(db, nil, newTestLogger(t))
	recipient := seedUser(t, db, "recipient")

	n.Notify(ctx, recipient.ID, user.NotificationComment, "New comment", "x", nil)
	n.Notify(ctx, recipient.ID, "announcement", "Heads up", "x", nil)
	if got := countNotifications(t, db, recipient.ID); got != 2 {
		t.Fatalf("notifications = %d, want 2", got)
	}
}

// Notify is fire-and-forget: a broken store must not surface to the caller.
func TestNotifySwallowsStoreFailure(t *testing.T) {
	db := newTestDB(t)
	n := NewNotifier(db, nil, newTestLogger(t))
	recipient := seedUser(t, db, "recipient")

	if err := db.Migrator().DropTable(&user.Notification{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	n.Notify(context.Background(), recipient.ID, user.NotificationFollow, "New follower", "x", nil)
}
