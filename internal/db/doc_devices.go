package db

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ DEVICE

func (s *docStore) FindDeviceByID(_ context.Context, id, tenantID string) (*model.Device, error) {
	var out *model.Device
	err := s.read("find device", func(d *document) error {
		i := indexOf(d.Devices, func(dev model.Device) bool { return dev.ID == id && owned(tenantID, dev.TenantID) })
		if i < 0 {
			return notFound("device", id)
		}
		dev := cloneDevice(d.Devices[i])
		out = &dev
		return nil
	})
	return out, err
}

func (s *docStore) GetDevicesByTenant(_ context.Context, tenantID string) ([]model.Device, error) {
	var out []model.Device
	err := s.read("list devices", func(d *document) error {
		out = cloneAll(filter(d.Devices, func(dev model.Device) bool { return dev.TenantID == tenantID }), cloneDevice)
		return nil
	})
	byCreated(out, func(dev model.Device) time.Time { return dev.CreatedAt }, func(dev model.Device) string { return dev.ID })
	return out, err
}

func (s *docStore) CreateDevice(_ context.Context, dev model.Device) (*model.Device, error) {
	if err := prepareDevice(&dev, now()); err != nil {
		return nil, err
	}
	err := s.write("create device", func(d *document) error {
		if indexOf(d.Devices, func(o model.Device) bool { return o.ID == dev.ID }) >= 0 {
			return conflict("device", "id", dev.ID)
		}
		d.Devices = append(d.Devices, cloneDevice(dev))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func (s *docStore) UpdateDevice(_ context.Context, id string, patch model.DevicePatch, tenantID string) (*model.Device, error) {
	var out model.Device
	err := s.write("update device", func(d *document) error {
		i := indexOf(d.Devices, func(dev model.Device) bool { return dev.ID == id && owned(tenantID, dev.TenantID) })
		if i < 0 {
			return notFound("device", id)
		}
		applyDevicePatch(&d.Devices[i], patch, now())
		out = cloneDevice(d.Devices[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteDevice(_ context.Context, id, tenantID string) error {
	return s.write("delete device", func(d *document) error {
		if indexOf(d.Devices, func(dev model.Device) bool { return dev.ID == id && owned(tenantID, dev.TenantID) }) < 0 {
			return notFound("device", id)
		}
		d.ScheduleDevices, _ = removeWhere(d.ScheduleDevices, func(l model.ScheduleDeviceLink) bool { return l.DeviceID == id })
		d.Devices, _ = removeWhere(d.Devices, func(dev model.Device) bool { return dev.ID == id })
		return nil
	})
}

// @ MEDIA

func (s *docStore) FindMediaItemByID(_ context.Context, id, tenantID string) (*model.MediaItem, error) {
	var out *model.MediaItem
	err := s.read("find media item", func(d *document) error {
		i := indexOf(d.MediaItems, func(m model.MediaItem) bool { return m.ID == id && owned(tenantID, m.TenantID) })
		if i < 0 {
			return notFound("media item", id)
		}
		m := cloneMediaItem(d.MediaItems[i])
		out = &m
		return nil
	})
	return out, err
}

func (s *docStore) GetMediaItemsByTenant(_ context.Context, tenantID string) ([]model.MediaItem, error) {
	var out []model.MediaItem
	err := s.read("list media items", func(d *document) error {
		out = cloneAll(filter(d.MediaItems, func(m model.MediaItem) bool { return m.TenantID == tenantID }), cloneMediaItem)
		return nil
	})
	byCreated(out, func(m model.MediaItem) time.Time { return m.CreatedAt }, func(m model.MediaItem) string { return m.ID })
	return out, err
}

func (s *docStore) CreateMediaItem(_ context.Context, m model.MediaItem) (*model.MediaItem, error) {
	if err := prepareMediaItem(&m, now()); err != nil {
		return nil, err
	}
	err := s.write("create media item", func(d *document) error {
		if indexOf(d.MediaItems, func(o model.MediaItem) bool { return o.ID == m.ID }) >= 0 {
			return conflict("media item", "id", m.ID)
		}
		d.MediaItems = append(d.MediaItems, cloneMediaItem(m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *docStore) UpdateMediaItem(_ context.Context, id string, patch model.MediaItemPatch, tenantID string) (*model.MediaItem, error) {
	var out model.MediaItem
	err := s.write("update media item", func(d *document) error {
		i := indexOf(d.MediaItems, func(m model.MediaItem) bool { return m.ID == id && owned(tenantID, m.TenantID) })
		if i < 0 {
			return notFound("media item", id)
		}
		applyMediaItemPatch(&d.MediaItems[i], patch, now())
		out = cloneMediaItem(d.MediaItems[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteMediaItem(_ context.Context, id, tenantID string) error {
	return s.write("delete media item", func(d *document) error {
		var n int
		d.MediaItems, n = removeWhere(d.MediaItems, func(m model.MediaItem) bool {
			return m.ID == id && owned(tenantID, m.TenantID)
		})
		if n == 0 {
			return notFound("media item", id)
		}
		return nil
	})
}
