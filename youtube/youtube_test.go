package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/logger"
)

func newTestClient(t *testing.T, status int, body string) (*YouTubeClient, *string) {
	t.Helper()
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewYouTubeClient(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)
	return c, &query
}

func TestLink(t *testing.T) {
	c, query := newTestClient(t, http.StatusOK, `{"items":[{"id":{"kind":"youtube#video","videoId":"JGwWNGJdvx8"}}]}`)

	got, err := c.Link(context.Background(), "Shape of You", "Ed Sheeran")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=JGwWNGJdvx8", got)
	assert.Equal(t, "Shape of You Ed Sheeran", *query)
}

func TestLinkNoResult(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{"items":[]}`)

	_, err := c.Link(context.Background(), "zzz", "nobody")
	assert.ErrorIs(t, err, cochlea.ErrNoLink)
}

func TestLinkAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusForbidden, `{"error":{"code":403,"message":"quotaExceeded"}}`)

	_, err := c.Link(context.Background(), "Shape of You", "Ed Sheeran")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cochlea.ErrNoLink)
}

func TestProvideYouTubeWithoutKey(t *testing.T) {
	log, _ := logger.NewTestLogger()
	c, err := ProvideYouTube(config.Config{}, log)
	require.NoError(t, err)
	assert.False(t, c.Enabled())
}
