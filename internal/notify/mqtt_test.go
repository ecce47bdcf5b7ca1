package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	done chan struct{}
	err  error
}

func newDoneToken(err error) *doneToken {
	t := &doneToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *doneToken) Wait() bool                     { <-t.done; return true }
func (t *doneToken) WaitTimeout(time.Duration) bool { return true }
func (t *doneToken) Done() <-chan struct{}          { return t.done }
func (t *doneToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes; methods not overridden are never called.
type fakeClient struct {
	mqtt.Client
	sent         []published
	err          error
	disconnected bool
}

func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	f.sent = append(f.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return newDoneToken(f.err)
}

func (f *fakeClient) Disconnect(uint) { f.disconnected = true }

func TestMQTTNotifierTopicAndPayload(t *testing.T) {
	client := &fakeClient{}
	n := newMQTTNotifier(client, "")

	require.NoError(t, n.Notify(context.Background(), Event{Entity: "schedule", Action: ActionDeleted, ID: "s1", TenantID: "t1"}))
	require.NoError(t, n.Notify(context.Background(), Event{Entity: "device", Action: ActionCreated, ID: "d1"}))

	require.Len(t, client.sent, 2)
	assert.Equal(t, "marquee/t1/schedule/s1", client.sent[0].topic)
	assert.Equal(t, byte(1), client.sent[0].qos)
	assert.Equal(t, "marquee/_/device/d1", client.sent[1].topic)

	var ev Event
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &ev))
	assert.Equal(t, ActionDeleted, ev.Action)

	require.NoError(t, n.Close())
	assert.True(t, client.disconnected)
}

func TestMQTTNotifierPublishError(t *testing.T) {
	client := &fakeClient{err: errors.New("not connected")}
	n := newMQTTNotifier(client, "signage")

	err := n.Notify(context.Background(), Event{Entity: "media", ID: "m1", TenantID: "t1"})
	assert.ErrorContains(t, err, "signage/t1/media/m1")
}
