package social

import (
	"context"
	"strings"
	"testing"
	"time"

	user "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

func TestFollowThenConflict(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	msg, err := rel.Follow(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if !strings.Contains(msg, "followed successfully") {
		t.Errorf("message = %q, want it to contain %q", msg, "followed successfully")
	}
	if !strings.Contains(msg, "bob") {
		t.Errorf("message = %q, want it to name the target", msg)
	}

	_, err = rel.Follow(ctx, a.ID, b.ID)
	if err == nil {
		t.Fatal("second follow should conflict")
	}
	if !utils.IsKind(err, utils.KindConflict) {
		t.Errorf("second follow error kind = %v, want conflict", err)
	}
	if !strings.Contains(err.Error(), "Already following this user") {
		t.Errorf("error = %v, want message %q", err, "Already following this user")
	}
}

func TestFollowSelf(t *testing.T) {
	db, rel, _ := newEngines(t)
	a := seedUser(t, db, "alice")

	_, err := rel.Follow(context.Background(), a.ID, a.ID)
	if err == nil {
		t.Fatal("self follow should fail")
	}
	if !utils.IsKind(err, utils.KindSelfAction) {
		t.Errorf("error kind = %v, want self_action", err)
	}
	if !strings.Contains(err.Error(), "Cannot follow yourself") {
		t.Errorf("error = %v, want message %q", err, "Cannot follow yourself")
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	db, rel, _ := newEngines(t)
	a := seedUser(t, db, "alice")
	ghost := seedUser(t, db, "ghost")
	if err := db.Delete(ghost).Error; err != nil {
		t.Fatalf("delete ghost: %v", err)
	}

	_, err := rel.Follow(context.Background(), a.ID, ghost.ID)
	if err == nil {
		t.Fatal("following a missing user should fail")
	}
	if !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("error kind = %v, want not_found", err)
	}
	if !strings.Contains(err.Error(), "User not found") {
		t.Errorf("error = %v, want message %q", err, "User not found")
	}
}

func TestUnfollowWithoutEdge(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	_, err := rel.Unfollow(ctx, a.ID, b.ID)
	if err == nil {
		t.Fatal("unfollow without an edge should fail")
	}
	if !utils.IsKind(err, utils.KindConflict) {
		t.Errorf("error kind = %v, want conflict", err)
	}
	if !strings.Contains(err.Error(), "Not following this user") {
		t.Errorf("error = %v, want message %q", err, "Not following this user")
	}

	// Unfollow after a follow-unfollow round trip is the same conflict,
	// not a silent no-op.
	if _, err := rel.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := rel.Unfollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if _, err := rel.Unfollow(ctx, a.ID, b.ID); err == nil {
		t.Fatal("second unfollow should conflict")
	}
}

func TestCheckFollowingSymmetry(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	following, err := rel.IsFollowing(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if following {
		t.Error("no edge yet, IsFollowing should be false")
	}

	if _, err := rel.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if following, _ = rel.IsFollowing(ctx, a.ID, b.ID); !following {
		t.Error("after follow, IsFollowing should be true")
	}

	// Direction matters.
	if reverse, _ := rel.IsFollowing(ctx, b.ID, a.ID); reverse {
		t.Error("edge is directed; reverse direction should be false")
	}

	if _, err := rel.Unfollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if following, _ = rel.IsFollowing(ctx, a.ID, b.ID); following {
		t.Error("after unfollow, IsFollowing should be false")
	}
}

func TestFollowEndToEnd(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")

	msg, err := rel.Follow(ctx, u2.ID, u1.ID)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if !strings.Contains(msg, "followed successfully") {
		t.Errorf("message = %q", msg)
	}

	var edges int64
	db.Model(&user.Follow{}).Count(&edges)
	if edges != 1 {
		t.Fatalf("edge count = %d, want 1", edges)
	}

	followers, pagination, err := rel.ListFollowers(ctx, u1.ID, 1, 20)
	if err != nil {
		t.Fatalf("list followers: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "u2" {
		t.Fatalf("followers = %+v, want exactly [u2]", followers)
	}
	if pagination.Total != 1 {
		t.Errorf("pagination total = %d, want 1", pagination.Total)
	}

	if _, err := rel.Unfollow(ctx, u2.ID, u1.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	db.Model(&user.Follow{}).Count(&edges)
	if edges != 0 {
		t.Fatalf("edge count after unfollow = %d, want 0", edges)
	}
}

func TestListFollowersEmptyAndOrder(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	target := seedUser(t, db, "target")

	followers, pagination, err := rel.ListFollowers(ctx, target.ID, 1, 20)
	if err != nil {
		t.Fatalf("empty list should not error: %v", err)
	}
	if len(followers) != 0 || pagination.Total != 0 {
		t.Fatalf("expected empty page, got %d items, total %d", len(followers), pagination.Total)
	}

	f1 := seedUser(t, db, "first")
	f2 := seedUser(t, db, "second")
	if _, err := rel.Follow(ctx, f1.ID, target.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	// Separate the edge timestamps so newest-first ordering is observable.
	db.Model(&user.Follow{}).Where("follower_id = ?", f1.ID).
		Update("created_at", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if _, err := rel.Follow(ctx, f2.ID, target.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	followers, _, err = rel.ListFollowers(ctx, target.ID, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("followers = %d, want 2", len(followers))
	}
	if followers[0].Username != "second" {
		t.Errorf("newest edge should come first, got %q", followers[0].Username)
	}

	following, _, err := rel.ListFollowing(ctx, f1.ID, 1, 20)
	if err != nil {
		t.Fatalf("list following: %v", err)
	}
	if len(following) != 1 || following[0].Username != "target" {
		t.Fatalf("following = %+v, want [target]", following)
	}
}

func TestFollowNotifiesTarget(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	if _, err := rel.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if got := countNotifications(t, db, b.ID); got != 1 {
		t.Fatalf("target notifications = %d, want 1", got)
	}
	if got := countNotifications(t, db, a.ID); got != 0 {
		t.Fatalf("actor notifications = %d, want 0", got)
	}

	var notif user.Notification
	if err := db.Where("user_id = ?", b.ID).First(&notif).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notif.Type != user.NotificationFollow {
		t.Errorf("type = %q, want %q", notif.Type, user.NotificationFollow)
	}
	if !strings.Contains(notif.Data, a.ID.String()) {
		t.Errorf("data = %q, want it to carry the actor id", notif.Data)
	}
}

func TestFollowRespectsDisabledPreference(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	prefs := &user.NotificationPreferences{UserID: b.ID, OnFollow: false, OnLike: true, OnComment: true}
	if err := db.Create(prefs).Error; err != nil {
		t.Fatalf("seed prefs: %v", err)
	}

	if _, err := rel.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if got := countNotifications(t, db, b.ID); got != 0 {
		t.Fatalf("notifications = %d, want 0 with follow notifications disabled", got)
	}

	// The follow itself still committed.
	if following, _ := rel.IsFollowing(ctx, a.ID, b.ID); !following {
		t.Error("edge should exist regardless of notification preferences")
	}
}

func TestCascadeUserDeleteRemovesEdges(t *testing.T) {
	db, rel, _ := newEngines(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	c := seedUser(t, db, "carol")

	// b is follower of a and followed by c: both endpoint roles.
	if _, err := rel.Follow(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := rel.Follow(ctx, c.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if err := db.Delete(&user.User{}, "id = ?", b.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var edges int64
	db.Model(&user.Follow{}).Count(&edges)
	if edges != 0 {
		t.Fatalf("edge count after user delete = %d, want 0", edges)
	}
}
