package db

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ SCHEDULE

// deviceIDsOf returns the linked device ids in the order they were written.
func deviceIDsOf(d *document, scheduleID string) []string {
	var ids []string
	for _, l := range d.ScheduleDevices {
		if l.ScheduleID == scheduleID {
			ids = append(ids, l.DeviceID)
		}
	}
	return ids
}

func withDevices(d *document, sched model.Schedule) model.Schedule {
	sched = cloneSchedule(sched)
	sched.DeviceIDs = deviceIDsOf(d, sched.ID)
	return sched
}

func linksFor(sched model.Schedule) []model.ScheduleDeviceLink {
	links := make([]model.ScheduleDeviceLink, len(sched.DeviceIDs))
	for i, id := range sched.DeviceIDs {
		links[i] = model.ScheduleDeviceLink{ScheduleID: sched.ID, DeviceID: id, CreatedAt: sched.UpdatedAt}
	}
	return links
}

func (s *docStore) FindScheduleByID(_ context.Context, id, tenantID string) (*model.Schedule, error) {
	var out *model.Schedule
	err := s.read("find schedule", func(d *document) error {
		i := indexOf(d.Schedules, func(sc model.Schedule) bool { return sc.ID == id && owned(tenantID, sc.TenantID) })
		if i < 0 {
			return notFound("schedule", id)
		}
		sc := withDevices(d, d.Schedules[i])
		out = &sc
		return nil
	})
	return out, err
}

func (s *docStore) listSchedules(op string, keep func(d *document, sc model.Schedule) bool) ([]model.Schedule, error) {
	var out []model.Schedule
	err := s.read(op, func(d *document) error {
		for _, sc := range d.Schedules {
			if keep(d, sc) {
				out = append(out, withDevices(d, sc))
			}
		}
		return nil
	})
	byCreated(out, func(sc model.Schedule) time.Time { return sc.CreatedAt }, func(sc model.Schedule) string { return sc.ID })
	return out, err
}

func (s *docStore) GetSchedulesByTenant(_ context.Context, tenantID string) ([]model.Schedule, error) {
	return s.listSchedules("list schedules", func(_ *document, sc model.Schedule) bool {
		return sc.TenantID == tenantID
	})
}

func (s *docStore) GetSchedulesByDevice(_ context.Context, deviceID, tenantID string) ([]model.Schedule, error) {
	return s.listSchedules("list device schedules", func(d *document, sc model.Schedule) bool {
		if !owned(tenantID, sc.TenantID) {
			return false
		}
		return indexOf(d.ScheduleDevices, func(l model.ScheduleDeviceLink) bool {
			return l.ScheduleID == sc.ID && l.DeviceID == deviceID
		}) >= 0
	})
}

func (s *docStore) CreateSchedule(_ context.Context, sched model.Schedule) (*model.Schedule, error) {
	if err := prepareSchedule(&sched, now()); err != nil {
		return nil, err
	}
	err := s.write("create schedule", func(d *document) error {
		if indexOf(d.Schedules, func(o model.Schedule) bool { return o.ID == sched.ID }) >= 0 {
			return conflict("schedule", "id", sched.ID)
		}
		parent := cloneSchedule(sched)
		parent.DeviceIDs = nil
		d.Schedules = append(d.Schedules, parent)
		d.ScheduleDevices = append(d.ScheduleDevices, linksFor(sched)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *docStore) UpdateSchedule(_ context.Context, id string, patch model.SchedulePatch, tenantID string) (*model.Schedule, error) {
	var out model.Schedule
	err := s.write("update schedule", func(d *document) error {
		i := indexOf(d.Schedules, func(sc model.Schedule) bool { return sc.ID == id && owned(tenantID, sc.TenantID) })
		if i < 0 {
			return notFound("schedule", id)
		}
		sc := withDevices(d, d.Schedules[i])
		applySchedulePatch(&sc, patch, now())

		parent := cloneSchedule(sc)
		parent.DeviceIDs = nil
		d.Schedules[i] = parent
		if patch.DeviceIDs != nil {
			d.ScheduleDevices, _ = removeWhere(d.ScheduleDevices, func(l model.ScheduleDeviceLink) bool { return l.ScheduleID == id })
			d.ScheduleDevices = append(d.ScheduleDevices, linksFor(sc)...)
		}
		out = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteSchedule(_ context.Context, id, tenantID string) error {
	return s.write("delete schedule", func(d *document) error {
		if indexOf(d.Schedules, func(sc model.Schedule) bool { return sc.ID == id && owned(tenantID, sc.TenantID) }) < 0 {
			return notFound("schedule", id)
		}
		d.ScheduleDevices, _ = removeWhere(d.ScheduleDevices, func(l model.ScheduleDeviceLink) bool { return l.ScheduleID == id })
		d.Schedules, _ = removeWhere(d.Schedules, func(sc model.Schedule) bool { return sc.ID == id })
		return nil
	})
}
