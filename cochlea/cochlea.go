// Package cochlea holds the types shared between the recommendation core,
// the history log and the HTTP handlers.
package cochlea

import (
	"errors"
	"fmt"
)

// Pair identifies a track by its name and artist. Names are not unique in
// the catalog, the pair is what gets deduplicated and remembered.
type Pair struct {
	Name   string `json:"name" firestore:"name"`
	Artist string `json:"artist" firestore:"artist"`
}

func (p Pair) String() string {
	return fmt.Sprintf("'%s' by %s", p.Name, p.Artist)
}

type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	// Distance is the Euclidean distance from the matched track in feature
	// space. Zero for the match itself.
	Distance float64 `json:"distance"`
	// Links maps a provider name (youtube, spotify, musicbrainz) to a URL.
	// Providers that found nothing are absent.
	Links map[string]string `json:"links,omitempty"`
}

func (t Track) Pair() Pair {
	return Pair{Name: t.Name, Artist: t.Artist}
}

// Display renders the track the way the recommendation list shows it.
func (t Track) Display() string {
	return t.Pair().String()
}

// Pairs collapses tracks to their identities, keeping order.
func Pairs(tracks []Track) []Pair {
	out := make([]Pair, len(tracks))
	for i, t := range tracks {
		out[i] = t.Pair()
	}
	return out
}

// ErrNoLink is returned by link providers when a search came back empty.
var ErrNoLink = errors.New("no link found")
