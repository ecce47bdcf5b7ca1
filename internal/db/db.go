package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"
)

// Observer receives the latency of every backend operation.
type Observer interface {
	ObserveStore(backend, operation string, took time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStore(string, string, time.Duration, error) {}

// Options selects and configures a backend. The relational store is used only
// when both DatabaseURL and ServiceKey are set; otherwise records live in the
// document at DataFile.
type Options struct {
	DatabaseURL    string
	ServiceKey     string
	MigrationsPath string
	ConnectRetries int
	RetryInterval  time.Duration

	DataFile string

	Observer Observer
}

// Open returns the Store for opts. It is meant to be called once at startup;
// the handle is passed to every collaborator and closed on shutdown.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	var (
		store Store
		err   error
	)
	if opts.DatabaseURL != "" && opts.ServiceKey != "" {
		store, err = openPostgres(ctx, opts)
	} else {
		log.Warn().Str("file", opts.DataFile).Msg("database credentials not set, using document store")
		store, err = openDocument(opts.DataFile, opts.Observer)
	}
	if err != nil {
		return nil, err
	}

	if err := seedWidgetTemplates(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	log.Info().Str("backend", store.Backend()).Msg("store ready")
	return store, nil
}

func openPostgres(ctx context.Context, opts Options) (*pgStore, error) {
	dsn, err := withPassword(opts.DatabaseURL, opts.ServiceKey)
	if err != nil {
		return nil, err
	}
	retries := opts.ConnectRetries
	if retries == 0 {
		retries = 10
	}
	interval := opts.RetryInterval
	if interval == 0 {
		interval = 2 * time.Second
	}

	conn, err := connectPostgres(ctx, dsn, retries, interval)
	if err != nil {
		return nil, backendErr("connect", err)
	}
	if opts.MigrationsPath != "" {
		if err := runMigrations(ctx, conn, opts.MigrationsPath); err != nil {
			conn.Close()
			return nil, backendErr("migrate", err)
		}
	}
	return newPGStore(conn, opts.Observer), nil
}

// withPassword injects key as the password of a postgres:// URL.
func withPassword(databaseURL, key string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("database url: unsupported scheme %q", u.Scheme)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, key)
	return u.String(), nil
}
