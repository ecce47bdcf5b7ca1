package db

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ SCHEDULE

func (s *pgStore) loadDeviceIDs(ctx context.Context, scheduleIDs ...string) (map[string][]string, error) {
	out := make(map[string][]string, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return out, nil
	}
	var rows []scheduleDeviceRow
	q := scheduleDevicesTable.selectFrom() + " WHERE schedule_id = ANY($1) ORDER BY schedule_id, position"
	if err := s.selectRows(ctx, "list schedule devices", &rows, q, pq.Array(scheduleIDs)); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ScheduleID] = append(out[r.ScheduleID], r.DeviceID)
	}
	return out, nil
}

func (s *pgStore) insertLinks(ctx context.Context, sched model.Schedule) error {
	if len(sched.DeviceIDs) == 0 {
		return nil
	}
	rows := scheduleDeviceRows(sched.ID, sched.DeviceIDs, sched.UpdatedAt)
	_, err := s.namedExec(ctx, "create schedule devices", scheduleDevicesTable.insert(), rows)
	return err
}

// schedules runs a schedule select and attaches device links to every row.
func (s *pgStore) schedules(ctx context.Context, op, query string, args ...any) ([]model.Schedule, error) {
	var rows []scheduleRow
	if err := s.selectRows(ctx, op, &rows, query, args...); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	links, err := s.loadDeviceIDs(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]model.Schedule, 0, len(rows))
	for _, r := range rows {
		sched := scheduleFromRow(r)
		sched.DeviceIDs = links[sched.ID]
		out = append(out, sched)
	}
	return out, nil
}

func (s *pgStore) FindScheduleByID(ctx context.Context, id, tenantID string) (*model.Schedule, error) {
	var r scheduleRow
	q, args := scoped(schedulesTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find schedule", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("schedule", id)
	}
	if err != nil {
		return nil, err
	}
	sched := scheduleFromRow(r)
	links, err := s.loadDeviceIDs(ctx, sched.ID)
	if err != nil {
		return nil, err
	}
	sched.DeviceIDs = links[sched.ID]
	return &sched, nil
}

func (s *pgStore) GetSchedulesByTenant(ctx context.Context, tenantID string) ([]model.Schedule, error) {
	q := schedulesTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	return s.schedules(ctx, "list schedules", q, tenantID)
}

func (s *pgStore) GetSchedulesByDevice(ctx context.Context, deviceID, tenantID string) ([]model.Schedule, error) {
	q, args := scoped(schedulesTable.selectFrom()+
		" WHERE id IN (SELECT schedule_id FROM schedule_devices WHERE device_id = $1)", tenantID, deviceID)
	return s.schedules(ctx, "list device schedules", q+" ORDER BY created_at, id", args...)
}

func (s *pgStore) CreateSchedule(ctx context.Context, sched model.Schedule) (*model.Schedule, error) {
	if err := prepareSchedule(&sched, now()); err != nil {
		return nil, err
	}
	if _, err := s.namedExec(ctx, "create schedule", schedulesTable.insert(), scheduleToRow(sched)); err != nil {
		return nil, err
	}
	if err := s.insertLinks(ctx, sched); err != nil {
		_, cerr := s.exec(ctx, "undo create schedule", "DELETE FROM schedules WHERE id = $1", sched.ID)
		return nil, partial("create schedule", err, cerr)
	}
	return &sched, nil
}

func (s *pgStore) UpdateSchedule(ctx context.Context, id string, patch model.SchedulePatch, tenantID string) (*model.Schedule, error) {
	sched, err := s.FindScheduleByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applySchedulePatch(sched, patch, now())
	if err := s.updateRow(ctx, "schedule", schedulesTable, id, scheduleToRow(*sched)); err != nil {
		return nil, err
	}
	if patch.DeviceIDs == nil {
		return sched, nil
	}
	if _, err := s.exec(ctx, "delete schedule devices", "DELETE FROM schedule_devices WHERE schedule_id = $1", id); err != nil {
		return nil, partial("update schedule", err, nil)
	}
	if err := s.insertLinks(ctx, *sched); err != nil {
		return nil, partial("update schedule", err, nil)
	}
	return sched, nil
}

func (s *pgStore) DeleteSchedule(ctx context.Context, id, tenantID string) error {
	if err := s.requireOwned(ctx, "schedule", schedulesTable, id, tenantID); err != nil {
		return err
	}
	if _, err := s.exec(ctx, "delete schedule devices", "DELETE FROM schedule_devices WHERE schedule_id = $1", id); err != nil {
		return err
	}
	return s.deleteScoped(ctx, "schedule", schedulesTable, id, tenantID)
}
