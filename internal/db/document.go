package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const backendDocument = "document"

// document is the on-disk shape of the local store: one collection per entity.
// Parents are kept without their children; zones, playlist items and schedule
// device links live in their own collections.
type document struct {
	Tenants         []model.Tenant             `json:"tenants"`
	Users           []model.User               `json:"users"`
	UserSessions    []model.Session            `json:"userSessions"`
	AuditLogs       []model.AuditLog           `json:"auditLogs"`
	Devices         []model.Device             `json:"devices"`
	MediaItems      []model.MediaItem          `json:"mediaItems"`
	Layouts         []model.Layout             `json:"layouts"`
	Zones           []model.Zone               `json:"zones"`
	Playlists       []model.Playlist           `json:"playlists"`
	PlaylistItems   []model.PlaylistItem       `json:"playlistItems"`
	Schedules       []model.Schedule           `json:"schedules"`
	ScheduleDevices []model.ScheduleDeviceLink `json:"scheduleDevices"`
	WidgetTemplates []model.WidgetTemplate     `json:"widgetTemplates"`
	WidgetInstances []model.WidgetInstance     `json:"widgetInstances"`
}

// docStore keeps the whole document in memory and rewrites the file after
// every mutation. The mutex serializes callers within one process only; two
// processes sharing a file still overwrite each other.
type docStore struct {
	path     string
	observer Observer

	mu  sync.RWMutex
	doc document
	raw []byte // last flushed contents
}

func openDocument(path string, observer Observer) (*docStore, error) {
	if path == "" {
		return nil, invalid("document store", "data file path is required")
	}
	if observer == nil {
		observer = nopObserver{}
	}
	s := &docStore{path: path, observer: observer}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("file", path).Msg("data file not found, starting empty")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, backendErr("create data dir", err)
		}
		if err := s.flush("init"); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, backendErr("read data file", err)
	default:
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, backendErr("decode data file", fmt.Errorf("%s: %w", path, err))
		}
		s.raw = data
	}
	return s, nil
}

func (s *docStore) Backend() string { return backendDocument }

func (s *docStore) Close() error { return nil }

// read runs fn against the document under the read lock.
func (s *docStore) read(op string, fn func(d *document) error) error {
	started := time.Now()
	s.mu.RLock()
	err := fn(&s.doc)
	s.mu.RUnlock()
	s.observe(op, started, err)
	return err
}

// write runs fn under the write lock and flushes the document when fn
// succeeds. fn must validate before it mutates anything; a failed flush puts
// the last flushed document back.
func (s *docStore) write(op string, fn func(d *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.doc); err != nil {
		return err
	}
	if err := s.flush(op); err != nil {
		var restored document
		if len(s.raw) > 0 {
			if uerr := json.Unmarshal(s.raw, &restored); uerr != nil {
				log.Error().Err(uerr).Msg("[doc] could not restore document after failed flush")
			}
		}
		s.doc = restored
		return err
	}
	return nil
}

// flush writes the document to a temp file beside the target and renames it
// into place. Callers hold the write lock.
func (s *docStore) flush(op string) (err error) {
	started := time.Now()
	defer func() { s.observe(op+" flush", started, err) }()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return backendErr("encode document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return backendErr("flush", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return backendErr("flush", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return backendErr("flush", err)
	}
	if err = tmp.Close(); err != nil {
		return backendErr("flush", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return backendErr("flush", err)
	}
	s.raw = data
	return nil
}

// observe reports only storage faults as failures; absent records are a
// normal outcome.
func (s *docStore) observe(op string, started time.Time, err error) {
	if !errors.Is(err, ErrBackend) {
		err = nil
	}
	s.observer.ObserveStore(backendDocument, op, time.Since(started), err)
}

// ----- collection helpers -----

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

// checkChildIDs rejects an id repeated within ids or already taken by a
// child of another parent.
func checkChildIDs(entity string, ids []string, taken func(id string) bool) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || taken(id) {
			return conflict(entity, "id", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// removeWhere drops every element matching drop and reports how many went.
func removeWhere[T any](items []T, drop func(T) bool) ([]T, int) {
	kept := items[:0]
	removed := 0
	for _, it := range items {
		if drop(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept, removed
}

func byCreated[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return id(items[i]) < id(items[j])
	})
}
