package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/notify"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
	closed bool
}

func (f *fakeNotifier) Notify(_ context.Context, ev notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeNotifier) Close() error {
	f.closed = true
	return nil
}

func TestWithNotifierNilIsPassThrough(t *testing.T) {
	s := newTestDocStore(t)
	assert.Same(t, Store(s), WithNotifier(s, nil))
}

func TestNotifyingStoreEmitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{}
	s := WithNotifier(newTestDocStore(t), n)

	tenant, err := s.CreateTenant(ctx, model.Tenant{Name: "Acme"})
	require.NoError(t, err)
	assert.Empty(t, n.events, "tenant changes are not device facing")

	device, err := s.CreateDevice(ctx, model.Device{TenantID: tenant.ID, Name: "Lobby"})
	require.NoError(t, err)
	name := "Front"
	_, err = s.UpdateDevice(ctx, device.ID, model.DevicePatch{Name: &name}, tenant.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteDevice(ctx, device.ID, tenant.ID))

	require.Len(t, n.events, 3)
	assert.Equal(t, notify.ActionCreated, n.events[0].Action)
	assert.Equal(t, notify.ActionUpdated, n.events[1].Action)
	assert.Equal(t, notify.ActionDeleted, n.events[2].Action)
	for _, ev := range n.events {
		assert.Equal(t, "device", ev.Entity)
		assert.Equal(t, device.ID, ev.ID)
		assert.Equal(t, tenant.ID, ev.TenantID)
	}

	// failures of the store itself publish nothing
	assert.ErrorIs(t, s.DeleteDevice(ctx, device.ID, tenant.ID), ErrNotFound)
	assert.Len(t, n.events, 3)

	require.NoError(t, s.Close())
	assert.True(t, n.closed)
}

func TestNotifyingStoreIgnoresDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{err: errors.New("broker down")}
	s := WithNotifier(newTestDocStore(t), n)

	p, err := s.CreatePlaylist(ctx, model.Playlist{TenantID: "t1", Name: "Loop"})
	require.NoError(t, err)
	require.Len(t, n.events, 1)
	assert.Equal(t, "playlist", n.events[0].Entity)
	assert.Equal(t, p.ID, n.events[0].ID)
}
