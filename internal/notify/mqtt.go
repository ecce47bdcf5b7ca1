package notify

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const mqttQoS = 1

// MQTTNotifier publishes each event to <prefix>/<tenantID>/<entity>/<id> so a
// device only subscribes to its own tenant's subtree.
type MQTTNotifier struct {
	client mqtt.Client
	prefix string
}

// NewMQTTNotifier connects to brokerURL with clientID.
func NewMQTTNotifier(brokerURL, clientID, prefix string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", brokerURL).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return newMQTTNotifier(client, prefix), nil
}

func newMQTTNotifier(client mqtt.Client, prefix string) *MQTTNotifier {
	if prefix == "" {
		prefix = "marquee"
	}
	return &MQTTNotifier{client: client, prefix: prefix}
}

func (n *MQTTNotifier) topic(ev Event) string {
	tenant := ev.TenantID
	if tenant == "" {
		tenant = "_"
	}
	return fmt.Sprintf("%s/%s/%s/%s", n.prefix, tenant, ev.Entity, ev.ID)
}

func (n *MQTTNotifier) Notify(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	topic := n.topic(ev)
	token := n.client.Publish(topic, mqttQoS, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (n *MQTTNotifier) Close() error {
	n.client.Disconnect(250)
	return nil
}
