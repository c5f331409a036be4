package spotify

// Playlist is a playlist summary returned by catalog search.
type Playlist struct {
	ID   string
	Name string
	URL  string // Open-in-Spotify link
	// Cover image URLs ordered by descending resolution, as Spotify returns them.
	Images []string
}

// CoverImage returns the largest cover image URL, or "" if there is none.
func (p Playlist) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
