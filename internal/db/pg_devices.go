package db

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ DEVICE

func (s *pgStore) FindDeviceByID(ctx context.Context, id, tenantID string) (*model.Device, error) {
	var r deviceRow
	q, args := scoped(devicesTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find device", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("device", id)
	}
	if err != nil {
		return nil, err
	}
	d, err := deviceFromRow(r)
	if err != nil {
		return nil, backendErr("decode device", err)
	}
	return &d, nil
}

func (s *pgStore) GetDevicesByTenant(ctx context.Context, tenantID string) ([]model.Device, error) {
	var rows []deviceRow
	q := devicesTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list devices", &rows, q, tenantID); err != nil {
		return nil, err
	}
	out := make([]model.Device, 0, len(rows))
	for _, r := range rows {
		d, err := deviceFromRow(r)
		if err != nil {
			return nil, backendErr("decode device", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *pgStore) CreateDevice(ctx context.Context, d model.Device) (*model.Device, error) {
	if err := prepareDevice(&d, now()); err != nil {
		return nil, err
	}
	row, err := deviceToRow(d)
	if err != nil {
		return nil, backendErr("encode device", err)
	}
	if _, err := s.namedExec(ctx, "create device", devicesTable.insert(), row); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *pgStore) UpdateDevice(ctx context.Context, id string, patch model.DevicePatch, tenantID string) (*model.Device, error) {
	d, err := s.FindDeviceByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyDevicePatch(d, patch, now())
	row, err := deviceToRow(*d)
	if err != nil {
		return nil, backendErr("encode device", err)
	}
	if err := s.updateRow(ctx, "device", devicesTable, id, row); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *pgStore) DeleteDevice(ctx context.Context, id, tenantID string) error {
	if err := s.requireOwned(ctx, "device", devicesTable, id, tenantID); err != nil {
		return err
	}
	if _, err := s.exec(ctx, "delete device links", "DELETE FROM schedule_devices WHERE device_id = $1", id); err != nil {
		return err
	}
	return s.deleteScoped(ctx, "device", devicesTable, id, tenantID)
}

// @ MEDIA

func (s *pgStore) FindMediaItemByID(ctx context.Context, id, tenantID string) (*model.MediaItem, error) {
	var r mediaItemRow
	q, args := scoped(mediaItemsTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find media item", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("media item", id)
	}
	if err != nil {
		return nil, err
	}
	m, err := mediaItemFromRow(r)
	if err != nil {
		return nil, backendErr("decode media item", err)
	}
	return &m, nil
}

func (s *pgStore) GetMediaItemsByTenant(ctx context.Context, tenantID string) ([]model.MediaItem, error) {
	var rows []mediaItemRow
	q := mediaItemsTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list media items", &rows, q, tenantID); err != nil {
		return nil, err
	}
	out := make([]model.MediaItem, 0, len(rows))
	for _, r := range rows {
		m, err := mediaItemFromRow(r)
		if err != nil {
			return nil, backendErr("decode media item", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *pgStore) CreateMediaItem(ctx context.Context, m model.MediaItem) (*model.MediaItem, error) {
	if err := prepareMediaItem(&m, now()); err != nil {
		return nil, err
	}
	row, err := mediaItemToRow(m)
	if err != nil {
		return nil, backendErr("encode media item", err)
	}
	if _, err := s.namedExec(ctx, "create media item", mediaItemsTable.insert(), row); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *pgStore) UpdateMediaItem(ctx context.Context, id string, patch model.MediaItemPatch, tenantID string) (*model.MediaItem, error) {
	m, err := s.FindMediaItemByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyMediaItemPatch(m, patch, now())
	row, err := mediaItemToRow(*m)
	if err != nil {
		return nil, backendErr("encode media item", err)
	}
	if err := s.updateRow(ctx, "media item", mediaItemsTable, id, row); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *pgStore) DeleteMediaItem(ctx context.Context, id, tenantID string) error {
	return s.deleteScoped(ctx, "media item", mediaItemsTable, id, tenantID)
}
