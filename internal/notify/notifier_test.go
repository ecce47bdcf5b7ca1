package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) Notify(context.Context, Event) error {
	c.calls++
	return c.err
}

func (c *countingNotifier) Close() error { return c.err }

func TestCompositeDeliversToAll(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countingNotifier{err: boom}, &countingNotifier{}

	err := Composite{a, b}.Notify(context.Background(), Event{Entity: "device", Action: ActionCreated, ID: "d1"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)

	assert.ErrorIs(t, Composite{a, b}.Close(), boom)
	assert.NoError(t, Composite{b}.Notify(context.Background(), Event{}))
	assert.NoError(t, Nop{}.Notify(context.Background(), Event{}))
}
