package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/notify"
)

// notifyingStore publishes a change event after every successful mutation of
// the records devices render from. Delivery failures are logged and dropped.
type notifyingStore struct {
	Store
	notifier notify.Notifier
}

// WithNotifier wraps store so that device-facing mutations emit events on n.
func WithNotifier(store Store, n notify.Notifier) Store {
	if n == nil {
		return store
	}
	return &notifyingStore{Store: store, notifier: n}
}

func (s *notifyingStore) emit(ctx context.Context, entity string, action notify.Action, id, tenantID string) {
	ev := notify.Event{Entity: entity, Action: action, ID: id, TenantID: tenantID, At: time.Now().UTC()}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("entity", entity).
			Str("action", string(action)).
			Str("id", id).
			Msg("failed to publish change event")
	}
}

func (s *notifyingStore) Close() error {
	if err := s.notifier.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close notifier")
	}
	return s.Store.Close()
}

// @ DEVICE

func (s *notifyingStore) CreateDevice(ctx context.Context, d model.Device) (*model.Device, error) {
	out, err := s.Store.CreateDevice(ctx, d)
	if err == nil {
		s.emit(ctx, "device", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdateDevice(ctx context.Context, id string, patch model.DevicePatch, tenantID string) (*model.Device, error) {
	out, err := s.Store.UpdateDevice(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "device", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeleteDevice(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeleteDevice(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "device", notify.ActionDeleted, id, tenantID)
	}
	return err
}

// @ MEDIA

func (s *notifyingStore) CreateMediaItem(ctx context.Context, m model.MediaItem) (*model.MediaItem, error) {
	out, err := s.Store.CreateMediaItem(ctx, m)
	if err == nil {
		s.emit(ctx, "media", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdateMediaItem(ctx context.Context, id string, patch model.MediaItemPatch, tenantID string) (*model.MediaItem, error) {
	out, err := s.Store.UpdateMediaItem(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "media", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeleteMediaItem(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeleteMediaItem(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "media", notify.ActionDeleted, id, tenantID)
	}
	return err
}

// @ LAYOUT

func (s *notifyingStore) CreateLayout(ctx context.Context, l model.Layout) (*model.Layout, error) {
	out, err := s.Store.CreateLayout(ctx, l)
	if err == nil {
		s.emit(ctx, "layout", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdateLayout(ctx context.Context, id string, patch model.LayoutPatch, tenantID string) (*model.Layout, error) {
	out, err := s.Store.UpdateLayout(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "layout", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeleteLayout(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeleteLayout(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "layout", notify.ActionDeleted, id, tenantID)
	}
	return err
}

// @ PLAYLIST

func (s *notifyingStore) CreatePlaylist(ctx context.Context, p model.Playlist) (*model.Playlist, error) {
	out, err := s.Store.CreatePlaylist(ctx, p)
	if err == nil {
		s.emit(ctx, "playlist", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdatePlaylist(ctx context.Context, id string, patch model.PlaylistPatch, tenantID string) (*model.Playlist, error) {
	out, err := s.Store.UpdatePlaylist(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "playlist", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeletePlaylist(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeletePlaylist(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "playlist", notify.ActionDeleted, id, tenantID)
	}
	return err
}

// @ SCHEDULE

func (s *notifyingStore) CreateSchedule(ctx context.Context, sched model.Schedule) (*model.Schedule, error) {
	out, err := s.Store.CreateSchedule(ctx, sched)
	if err == nil {
		s.emit(ctx, "schedule", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdateSchedule(ctx context.Context, id string, patch model.SchedulePatch, tenantID string) (*model.Schedule, error) {
	out, err := s.Store.UpdateSchedule(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "schedule", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeleteSchedule(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeleteSchedule(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "schedule", notify.ActionDeleted, id, tenantID)
	}
	return err
}

// @ WIDGET INSTANCE

func (s *notifyingStore) CreateWidgetInstance(ctx context.Context, w model.WidgetInstance) (*model.WidgetInstance, error) {
	out, err := s.Store.CreateWidgetInstance(ctx, w)
	if err == nil {
		s.emit(ctx, "widget", notify.ActionCreated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) UpdateWidgetInstance(ctx context.Context, id string, patch model.WidgetInstancePatch, tenantID string) (*model.WidgetInstance, error) {
	out, err := s.Store.UpdateWidgetInstance(ctx, id, patch, tenantID)
	if err == nil {
		s.emit(ctx, "widget", notify.ActionUpdated, out.ID, out.TenantID)
	}
	return out, err
}

func (s *notifyingStore) DeleteWidgetInstance(ctx context.Context, id, tenantID string) error {
	err := s.Store.DeleteWidgetInstance(ctx, id, tenantID)
	if err == nil {
		s.emit(ctx, "widget", notify.ActionDeleted, id, tenantID)
	}
	return err
}
