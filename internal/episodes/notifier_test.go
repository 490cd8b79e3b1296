package episodes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/database"
	"github.com/nyanbar/nyanbar/internal/kvstore"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewNotifier(kvstore.New(db.Conn(), zerolog.Nop()), zerolog.Nop())
}

func TestNotifyAppendsNotification(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	n.Notify(ctx, CheckResult{AnimeID: 1, AnimeTitle: "Dandadan", LatestEpisode: 7, HasNewEpisode: true})
	n.Notify(ctx, CheckResult{AnimeID: 2, AnimeTitle: "Frieren", LatestEpisode: 12, HasNewEpisode: true})

	notifications, err := n.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications))
	}

	first := notifications[0]
	if first.ID == "" {
		t.Error("notification has no ID")
	}
	if first.AnimeTitle != "Dandadan" || first.Episode != 7 {
		t.Errorf("unexpected notification: %+v", first)
	}
	if first.Read {
		t.Error("new notification already marked read")
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt was not stamped")
	}
	if notifications[0].ID == notifications[1].ID {
		t.Error("notification IDs collide")
	}
}

func TestMarkRead(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	n.Notify(ctx, CheckResult{AnimeID: 1, AnimeTitle: "Dandadan", LatestEpisode: 7})
	notifications, _ := n.List(ctx)

	if err := n.MarkRead(ctx, notifications[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	notifications, _ = n.List(ctx)
	if !notifications[0].Read {
		t.Error("notification not marked read")
	}

	if err := n.MarkRead(ctx, "no-such-id"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("MarkRead of unknown ID: %v", err)
	}
}

func TestRemoveNotification(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	n.Notify(ctx, CheckResult{AnimeID: 1, AnimeTitle: "Dandadan", LatestEpisode: 7})
	n.Notify(ctx, CheckResult{AnimeID: 2, AnimeTitle: "Frieren", LatestEpisode: 12})
	notifications, _ := n.List(ctx)

	if err := n.Remove(ctx, notifications[0].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	notifications, _ = n.List(ctx)
	if len(notifications) != 1 || notifications[0].AnimeTitle != "Frieren" {
		t.Errorf("after remove: %+v", notifications)
	}

	if err := n.Remove(ctx, "no-such-id"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Remove of unknown ID: %v", err)
	}
}

func TestClearNotifications(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	n.Notify(ctx, CheckResult{AnimeID: 1, AnimeTitle: "Dandadan", LatestEpisode: 7})

	if err := n.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	notifications, err := n.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("got %d notifications after clear", len(notifications))
	}
}
