package db

import (
	"context"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ PLAYLIST

func itemsOf(d *document, playlistID string) []model.PlaylistItem {
	items := filter(d.PlaylistItems, func(it model.PlaylistItem) bool { return it.PlaylistID == playlistID })
	sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
	return items
}

func withItems(d *document, p model.Playlist) model.Playlist {
	p.Items = itemsOf(d, p.ID)
	return p
}

// checkItemIDs lets a playlist reuse its own item ids when its items are
// replaced.
func checkItemIDs(d *document, playlistID string, items []model.PlaylistItem) error {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return checkChildIDs("playlist item", ids, func(id string) bool {
		return indexOf(d.PlaylistItems, func(it model.PlaylistItem) bool { return it.ID == id && it.PlaylistID != playlistID }) >= 0
	})
}

func (s *docStore) FindPlaylistByID(_ context.Context, id, tenantID string) (*model.Playlist, error) {
	var out *model.Playlist
	err := s.read("find playlist", func(d *document) error {
		i := indexOf(d.Playlists, func(p model.Playlist) bool { return p.ID == id && owned(tenantID, p.TenantID) })
		if i < 0 {
			return notFound("playlist", id)
		}
		p := withItems(d, d.Playlists[i])
		out = &p
		return nil
	})
	return out, err
}

func (s *docStore) GetPlaylistsByTenant(_ context.Context, tenantID string) ([]model.Playlist, error) {
	var out []model.Playlist
	err := s.read("list playlists", func(d *document) error {
		for _, p := range d.Playlists {
			if p.TenantID == tenantID {
				out = append(out, withItems(d, p))
			}
		}
		return nil
	})
	byCreated(out, func(p model.Playlist) time.Time { return p.CreatedAt }, func(p model.Playlist) string { return p.ID })
	return out, err
}

func (s *docStore) GetPlaylistItems(_ context.Context, playlistID string) ([]model.PlaylistItem, error) {
	var out []model.PlaylistItem
	err := s.read("list playlist items", func(d *document) error {
		out = itemsOf(d, playlistID)
		return nil
	})
	return out, err
}

func (s *docStore) CreatePlaylist(_ context.Context, p model.Playlist) (*model.Playlist, error) {
	if err := preparePlaylist(&p, now()); err != nil {
		return nil, err
	}
	err := s.write("create playlist", func(d *document) error {
		if indexOf(d.Playlists, func(o model.Playlist) bool { return o.ID == p.ID }) >= 0 {
			return conflict("playlist", "id", p.ID)
		}
		if err := checkItemIDs(d, p.ID, p.Items); err != nil {
			return err
		}
		parent := p
		parent.Items = nil
		d.Playlists = append(d.Playlists, parent)
		d.PlaylistItems = append(d.PlaylistItems, cloneSlice(p.Items)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *docStore) UpdatePlaylist(_ context.Context, id string, patch model.PlaylistPatch, tenantID string) (*model.Playlist, error) {
	var out model.Playlist
	err := s.write("update playlist", func(d *document) error {
		i := indexOf(d.Playlists, func(p model.Playlist) bool { return p.ID == id && owned(tenantID, p.TenantID) })
		if i < 0 {
			return notFound("playlist", id)
		}
		p := withItems(d, d.Playlists[i])
		applyPlaylistPatch(&p, patch, now())
		if patch.Items != nil {
			if err := checkItemIDs(d, id, p.Items); err != nil {
				return err
			}
		}

		parent := p
		parent.Items = nil
		d.Playlists[i] = parent
		if patch.Items != nil {
			d.PlaylistItems, _ = removeWhere(d.PlaylistItems, func(it model.PlaylistItem) bool { return it.PlaylistID == id })
			d.PlaylistItems = append(d.PlaylistItems, cloneSlice(p.Items)...)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeletePlaylist(_ context.Context, id, tenantID string) error {
	return s.write("delete playlist", func(d *document) error {
		if indexOf(d.Playlists, func(p model.Playlist) bool { return p.ID == id && owned(tenantID, p.TenantID) }) < 0 {
			return notFound("playlist", id)
		}
		d.PlaylistItems, _ = removeWhere(d.PlaylistItems, func(it model.PlaylistItem) bool { return it.PlaylistID == id })
		d.Playlists, _ = removeWhere(d.Playlists, func(p model.Playlist) bool { return p.ID == id })
		return nil
	})
}
