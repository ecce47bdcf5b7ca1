package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const backendPostgres = "postgres"

// pgStore satisfies Store against a remote PostgreSQL database. Child rows are
// always fetched with a second query and attached here; nothing relies on the
// database to join them.
type pgStore struct {
	db       *sqlx.DB
	observer Observer
}

func newPGStore(conn *sqlx.DB, observer Observer) *pgStore {
	if observer == nil {
		observer = nopObserver{}
	}
	return &pgStore{db: conn, observer: observer}
}

func (s *pgStore) Backend() string { return backendPostgres }

func (s *pgStore) Close() error {
	return s.db.Close()
}

// connectPostgres opens a connection, retrying while the database comes up.
func connectPostgres(ctx context.Context, dsn string, attempts int, interval time.Duration) (*sqlx.DB, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var conn *sqlx.DB
		conn, err = sqlx.ConnectContext(ctx, "postgres", dsn)
		if err == nil {
			log.Info().Msg("connected to database")
			return conn, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", interval)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", attempts, err)
}

// runMigrations finds all "*.up.sql" files in migrationsPath (sorted by name)
// and executes their contents in order. "*.down.sql" files are ignored.
func runMigrations(ctx context.Context, conn *sqlx.DB, migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		stmt, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if len(stmt) == 0 {
			continue
		}
		if _, err := conn.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Debug().Str("file", filepath.Base(file)).Msg("applied migration")
	}
	return nil
}

// ----- query helpers -----
// Every helper reports its latency to the observer and translates driver errors
// into the package error kinds. sql.ErrNoRows becomes a bare ErrNotFound so the
// caller can attach the entity and id.

func (s *pgStore) observe(op string, started time.Time, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	s.observer.ObserveStore(backendPostgres, op, time.Since(started), err)
}

func (s *pgStore) fail(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w: %s", op, ErrConflict, pqErr.Constraint)
	}
	return backendErr(op, err)
}

func (s *pgStore) get(ctx context.Context, op string, dest any, query string, args ...any) error {
	started := time.Now()
	err := s.db.GetContext(ctx, dest, query, args...)
	s.observe(op, started, err)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("[db] query failed")
		return s.fail(op, err)
	}
	return nil
}

func (s *pgStore) selectRows(ctx context.Context, op string, dest any, query string, args ...any) error {
	started := time.Now()
	err := s.db.SelectContext(ctx, dest, query, args...)
	s.observe(op, started, err)
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("[db] select failed")
		return s.fail(op, err)
	}
	return nil
}

func (s *pgStore) exec(ctx context.Context, op string, query string, args ...any) (int64, error) {
	started := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	s.observe(op, started, err)
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("[db] exec failed")
		return 0, s.fail(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, backendErr(op, err)
	}
	return n, nil
}

// namedExec binds arg by db tags. A slice arg performs a single batch insert.
func (s *pgStore) namedExec(ctx context.Context, op string, query string, arg any) (int64, error) {
	started := time.Now()
	res, err := s.db.NamedExecContext(ctx, query, arg)
	s.observe(op, started, err)
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("[db] named exec failed")
		return 0, s.fail(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, backendErr(op, err)
	}
	return n, nil
}

// scoped appends a tenant filter to a WHERE clause when tenantID is set.
func scoped(query, tenantID string, args ...any) (string, []any) {
	if tenantID == "" {
		return query, args
	}
	args = append(args, tenantID)
	return fmt.Sprintf("%s AND tenant_id = $%d", query, len(args)), args
}

// requireOwned checks that id exists in t and is visible under tenantID.
func (s *pgStore) requireOwned(ctx context.Context, entity string, t table, id, tenantID string) error {
	var found string
	q, args := scoped("SELECT id FROM "+t.name+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find "+entity, &found, q, args...)
	if errors.Is(err, ErrNotFound) {
		return notFound(entity, id)
	}
	return err
}

// deleteScoped removes one parent row, reporting ErrNotFound when nothing
// matched.
func (s *pgStore) deleteScoped(ctx context.Context, entity string, t table, id, tenantID string) error {
	q, args := scoped("DELETE FROM "+t.name+" WHERE id = $1", tenantID, id)
	n, err := s.exec(ctx, "delete "+entity, q, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

func (s *pgStore) updateRow(ctx context.Context, entity string, t table, id string, row any) error {
	n, err := s.namedExec(ctx, "update "+entity, t.update(), row)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}
