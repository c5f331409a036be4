package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// maxSearchLimit is the largest page size Spotify accepts for search.
const maxSearchLimit = 50

// SearchPlaylists searches the catalog for playlists matching query.
// At most limit results are returned, in Spotify's relevance order.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	limit = max(1, min(limit, maxSearchLimit))

	result, err := c.api.Search(ctx, query, spotify.SearchTypePlaylist, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching playlists for %q: %w", query, err)
	}

	if result.Playlists == nil {
		return nil, nil
	}

	playlists := make([]Playlist, 0, len(result.Playlists.Playlists))
	for _, p := range result.Playlists.Playlists {
		// Spotify sometimes returns null entries in playlist search results.
		if p.ID == "" && p.Name == "" {
			continue
		}
		pl := convertPlaylist(p)
		if pl.URL == "" {
			continue
		}
		playlists = append(playlists, pl)
		if len(playlists) == limit {
			break
		}
	}

	return playlists, nil
}

// convertPlaylist converts a Spotify SimplePlaylist to a Playlist.
func convertPlaylist(p spotify.SimplePlaylist) Playlist {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img.URL != "" {
			images = append(images, img.URL)
		}
	}

	return Playlist{
		ID:     p.ID.String(),
		Name:   p.Name,
		URL:    p.ExternalURLs["spotify"],
		Images: images,
	}
}
