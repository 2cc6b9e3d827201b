package playlist

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/genwaves/internal/params"
)

// Track is a playable generated track.
type Track struct {
	Params   params.OutputParams
	Gradient [2]colorful.Color // display gradient stops
	Length   time.Duration
	Audio    *beep.Buffer // decoded audio, nil until produced
}

// Title returns the track's identity.
func (t Track) Title() string {
	return t.Params.Title
}

// Playlist holds an ordered collection of tracks with unique titles.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
// A track whose title is already present replaces the old entry, which is
// removed from its position; the new one goes to the end.
func (p *Playlist) Add(tracks ...Track) {
	for _, t := range tracks {
		if i := p.IndexOf(t.Title()); i >= 0 {
			p.Remove(i)
		}
		p.tracks = append(p.tracks, t)
	}
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// IndexOf returns the position of the track with the given title, or -1.
func (p *Playlist) IndexOf(title string) int {
	for i := range p.tracks {
		if p.tracks[i].Title() == title {
			return i
		}
	}
	return -1
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Params returns the OutputParams of every track, in playlist order.
func (p *Playlist) Params() []params.OutputParams {
	result := make([]params.OutputParams, len(p.tracks))
	for i := range p.tracks {
		result[i] = p.tracks[i].Params
	}
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Move moves the track at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.tracks) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.tracks) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	track := p.tracks[fromIndex]
	p.tracks = append(p.tracks[:fromIndex], p.tracks[fromIndex+1:]...)
	p.tracks = append(p.tracks[:toIndex], append([]Track{track}, p.tracks[toIndex:]...)...)
	return true
}
