package spotify

import (
	spot "github.com/zmb3/spotify/v2"
)

// ExternalURL returns the track's spotify URL, falling back to one built
// from its ID.
func ExternalURL(t spot.SimpleTrack) string {
	if u := t.ExternalURLs["spotify"]; u != "" {
		return u
	}
	if t.ID != "" {
		return "https://open.spotify.com/track/" + string(t.ID)
	}
	return ""
}
