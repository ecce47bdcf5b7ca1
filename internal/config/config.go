package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-based settings
type Config struct {
	Environment   string `env:"APP_ENV" envDefault:"production"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// relational store; both must be set for it to be used
	DatabaseURL        string        `env:"DATABASE_URL"`
	DatabaseServiceKey string        `env:"DATABASE_SERVICE_KEY"`
	MigrationsPath     string        `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
	DBConnectRetries   int           `env:"DB_CONNECT_RETRIES" envDefault:"10"`
	DBRetryInterval    time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"2s"`

	// document store fallback
	DataFile string `env:"DATA_FILE" envDefault:"./data/marquee.json"`

	RedisAddress  string `env:"REDIS_ADDRESS"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"marquee:events"`

	MQTTBrokerURL   string `env:"MQTT_BROKER_URL"`
	MQTTClientID    string `env:"MQTT_CLIENT_ID" envDefault:"marquee-server"`
	MQTTTopicPrefix string `env:"MQTT_TOPIC_PREFIX" envDefault:"marquee"`

	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSweep     time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`
	MaxLoginAttempts int           `env:"MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LockoutDuration  time.Duration `env:"LOCKOUT_DURATION" envDefault:"15m"`

	WidgetsDir      string `env:"WIDGETS_DIR" envDefault:"./widgets"`
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UseSpaces       bool   `env:"USE_SPACES" envDefault:"false"`
	SpacesEndpoint  string `env:"SPACES_ENDPOINT"`
	SpacesRegion    string `env:"SPACES_REGION"`
	SpacesBucket    string `env:"SPACES_BUCKET"`
	SpacesCDNURL    string `env:"SPACES_CDN_URL"`
	SpacesAccessKey string `env:"SPACES_ACCESS_KEY"`
	SpacesSecretKey string `env:"SPACES_SECRET_KEY"`
}

// Load reads a .env file when one exists, then parses the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.UseSpaces && (c.SpacesBucket == "" || c.SpacesEndpoint == "") {
		return fmt.Errorf("USE_SPACES requires SPACES_ENDPOINT and SPACES_BUCKET")
	}
	if c.MaxLoginAttempts < 1 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be at least 1")
	}
	return nil
}

// UsesDatabase reports whether the relational store is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != "" && c.DatabaseServiceKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
