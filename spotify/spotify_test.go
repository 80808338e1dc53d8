package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/logger"
)

func newTestClient(t *testing.T, body string) (*SpotifyClient, *string) {
	t.Helper()
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewSpotifyClient(srv.Client(), spot.WithBaseURL(srv.URL+"/")), &query
}

func TestLink(t *testing.T) {
	c, query := newTestClient(t, `{"tracks":{"items":[{"id":"7qiZfU4dY1lWllzX7mPBI3","name":"Shape of You","external_urls":{"spotify":"https://open.spotify.com/track/7qiZfU4dY1lWllzX7mPBI3"}}]}}`)

	got, err := c.Link(context.Background(), "Shape of You", "Ed Sheeran")
	require.NoError(t, err)
	assert.Equal(t, "https://open.spotify.com/track/7qiZfU4dY1lWllzX7mPBI3", got)
	assert.Equal(t, "track:Shape of You artist:Ed Sheeran", *query)
}

func TestLinkNoResult(t *testing.T) {
	c, _ := newTestClient(t, `{"tracks":{"items":[]}}`)

	_, err := c.Link(context.Background(), "zzz", "nobody")
	assert.ErrorIs(t, err, cochlea.ErrNoLink)
}

func TestExternalURL(t *testing.T) {
	assert.Equal(t, "https://open.spotify.com/track/abc", ExternalURL(spot.SimpleTrack{ID: "abc"}))
	assert.Equal(t, "", ExternalURL(spot.SimpleTrack{}))
}

func TestProvideSpotifyWithoutCredentials(t *testing.T) {
	log, _ := logger.NewTestLogger()
	c := ProvideSpotify(config.Config{}, log)
	assert.False(t, c.Enabled())

	c = ProvideSpotify(config.Config{SpotifyID: "id", SpotifySecret: "secret"}, log)
	assert.True(t, c.Enabled())
}
