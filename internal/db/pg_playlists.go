package db

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ PLAYLIST

func (s *pgStore) loadItems(ctx context.Context, playlistIDs ...string) (map[string][]model.PlaylistItem, error) {
	out := make(map[string][]model.PlaylistItem, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return out, nil
	}
	var rows []playlistItemRow
	q := playlistItemsTable.selectFrom() + " WHERE playlist_id = ANY($1) ORDER BY playlist_id, order_index"
	if err := s.selectRows(ctx, "list playlist items", &rows, q, pq.Array(playlistIDs)); err != nil {
		return nil, err
	}
	for _, r := range rows {
		it := playlistItemFromRow(r)
		out[it.PlaylistID] = append(out[it.PlaylistID], it)
	}
	return out, nil
}

func (s *pgStore) insertItems(ctx context.Context, items []model.PlaylistItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]playlistItemRow, len(items))
	for i, it := range items {
		rows[i] = playlistItemToRow(it)
	}
	_, err := s.namedExec(ctx, "create playlist items", playlistItemsTable.insert(), rows)
	return err
}

func (s *pgStore) FindPlaylistByID(ctx context.Context, id, tenantID string) (*model.Playlist, error) {
	var r playlistRow
	q, args := scoped(playlistsTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find playlist", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("playlist", id)
	}
	if err != nil {
		return nil, err
	}
	p := playlistFromRow(r)
	items, err := s.loadItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	return &p, nil
}

func (s *pgStore) GetPlaylistsByTenant(ctx context.Context, tenantID string) ([]model.Playlist, error) {
	var rows []playlistRow
	q := playlistsTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list playlists", &rows, q, tenantID); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	items, err := s.loadItems(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]model.Playlist, 0, len(rows))
	for _, r := range rows {
		p := playlistFromRow(r)
		p.Items = items[p.ID]
		out = append(out, p)
	}
	return out, nil
}

func (s *pgStore) GetPlaylistItems(ctx context.Context, playlistID string) ([]model.PlaylistItem, error) {
	items, err := s.loadItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return items[playlistID], nil
}

func (s *pgStore) CreatePlaylist(ctx context.Context, p model.Playlist) (*model.Playlist, error) {
	if err := preparePlaylist(&p, now()); err != nil {
		return nil, err
	}
	if _, err := s.namedExec(ctx, "create playlist", playlistsTable.insert(), playlistToRow(p)); err != nil {
		return nil, err
	}
	if err := s.insertItems(ctx, p.Items); err != nil {
		_, cerr := s.exec(ctx, "undo create playlist", "DELETE FROM playlists WHERE id = $1", p.ID)
		return nil, partial("create playlist", err, cerr)
	}
	return &p, nil
}

func (s *pgStore) UpdatePlaylist(ctx context.Context, id string, patch model.PlaylistPatch, tenantID string) (*model.Playlist, error) {
	p, err := s.FindPlaylistByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyPlaylistPatch(p, patch, now())
	if err := s.updateRow(ctx, "playlist", playlistsTable, id, playlistToRow(*p)); err != nil {
		return nil, err
	}
	if patch.Items == nil {
		return p, nil
	}
	if _, err := s.exec(ctx, "delete playlist items", "DELETE FROM playlist_items WHERE playlist_id = $1", id); err != nil {
		return nil, partial("update playlist", err, nil)
	}
	if err := s.insertItems(ctx, p.Items); err != nil {
		return nil, partial("update playlist", err, nil)
	}
	return p, nil
}

func (s *pgStore) DeletePlaylist(ctx context.Context, id, tenantID string) error {
	if err := s.requireOwned(ctx, "playlist", playlistsTable, id, tenantID); err != nil {
		return err
	}
	if _, err := s.exec(ctx, "delete playlist items", "DELETE FROM playlist_items WHERE playlist_id = $1", id); err != nil {
		return err
	}
	return s.deleteScoped(ctx, "playlist", playlistsTable, id, tenantID)
}
