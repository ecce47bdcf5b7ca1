package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/config"
	"github.com/Nixie-Tech-LLC/marquee/internal/notify"
	"github.com/Nixie-Tech-LLC/marquee/internal/redis"
)

// InitNotifier fans change events out to every configured broker. A broker
// that cannot be reached at startup is skipped, not fatal.
func InitNotifier(ctx context.Context, cfg *config.Config) notify.Notifier {
	var out notify.Composite

	if cfg.RedisAddress != "" {
		client, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, change events will not be published there")
		} else {
			out = append(out, notify.NewRedisNotifier(client, cfg.RedisChannel))
		}
	}

	if cfg.MQTTBrokerURL != "" {
		n, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.Warn().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt unavailable, change events will not be published there")
		} else {
			out = append(out, n)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
