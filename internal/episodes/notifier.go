package episodes

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/kvstore"
)

// ErrNotificationNotFound is returned when a notification ID does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// Notification records one detected new episode.
type Notification struct {
	ID         string    `json:"id"`
	AnimeID    int       `json:"animeId"`
	AnimeTitle string    `json:"animeTitle"`
	Episode    int       `json:"episode"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// Notifier persists episode notifications in the key-value store. Its
// Notify method satisfies ResultHandler so it can be composed onto a
// Checker at construction time.
type Notifier struct {
	store  *kvstore.Store
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewNotifier creates a new notifier.
func NewNotifier(store *kvstore.Store, logger zerolog.Logger) *Notifier {
	return &Notifier{
		store:  store,
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Notify appends a notification for a new-episode result.
func (n *Notifier) Notify(ctx context.Context, result CheckResult) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notifications, err := n.load(ctx)
	if err != nil {
		n.logger.Error().Err(err).Msg("Failed to load notifications")
		return
	}

	notifications = append(notifications, Notification{
		ID:         uuid.NewString(),
		AnimeID:    result.AnimeID,
		AnimeTitle: result.AnimeTitle,
		Episode:    result.LatestEpisode,
		CreatedAt:  time.Now(),
	})

	if err := n.store.SetJSON(ctx, kvstore.KeyNotifications, notifications); err != nil {
		n.logger.Error().Err(err).Msg("Failed to save notification")
		return
	}

	n.logger.Info().
		Str("title", result.AnimeTitle).
		Int("episode", result.LatestEpisode).
		Msg("New episode notification")
}

// List returns all stored notifications.
func (n *Notifier) List(ctx context.Context) ([]Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.load(ctx)
}

// MarkRead marks one notification as read.
func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	notifications, err := n.load(ctx)
	if err != nil {
		return err
	}

	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].Read = true
			return n.store.SetJSON(ctx, kvstore.KeyNotifications, notifications)
		}
	}
	return ErrNotificationNotFound
}

// Remove deletes one notification.
func (n *Notifier) Remove(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	notifications, err := n.load(ctx)
	if err != nil {
		return err
	}

	filtered := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		if notification.ID != id {
			filtered = append(filtered, notification)
		}
	}
	if len(filtered) == len(notifications) {
		return ErrNotificationNotFound
	}

	return n.store.SetJSON(ctx, kvstore.KeyNotifications, filtered)
}

// Clear deletes all notifications.
func (n *Notifier) Clear(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.store.Delete(ctx, kvstore.KeyNotifications)
}

func (n *Notifier) load(ctx context.Context) ([]Notification, error) {
	notifications := make([]Notification, 0)
	if _, err := n.store.GetJSON(ctx, kvstore.KeyNotifications, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
