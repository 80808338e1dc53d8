package spotify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
)

type SpotifyClient struct {
	Client *spotify.Client
	ID     string
	Secret string
}

// ProvideSpotify builds an app-authenticated client. Without credentials the
// returned client has a nil Client and is left out of link enrichment.
func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	c := &SpotifyClient{ID: cfg.SpotifyID, Secret: cfg.SpotifySecret}
	if c.ID == "" || c.Secret == "" {
		log.Info("spotify credentials not set, spotify links disabled")
		return c
	}

	log.Info("setting up spotify client")
	cc := &clientcredentials.Config{
		ClientID:     c.ID,
		ClientSecret: c.Secret,
		TokenURL:     spotifyauth.TokenURL,
	}
	c.Client = spotify.New(cc.Client(context.Background()))
	return c
}

// NewSpotifyClient wraps an already authenticated HTTP client.
func NewSpotifyClient(httpClient *http.Client, opts ...spotify.ClientOption) *SpotifyClient {
	return &SpotifyClient{Client: spotify.New(httpClient, opts...)}
}

func (c *SpotifyClient) Enabled() bool {
	return c != nil && c.Client != nil
}

func (*SpotifyClient) Name() string {
	return "spotify"
}

// Link searches for the track and returns its open.spotify.com URL.
func (c *SpotifyClient) Link(ctx context.Context, name, artist string) (string, error) {
	q := fmt.Sprintf("track:%s artist:%s", name, artist)
	results, err := c.Client.Search(ctx, q, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return "", fmt.Errorf("spotify search: %w", err)
	}
	if results.Tracks == nil {
		return "", cochlea.ErrNoLink
	}
	for _, t := range results.Tracks.Tracks {
		if u := ExternalURL(t.SimpleTrack); u != "" {
			return u, nil
		}
	}
	return "", cochlea.ErrNoLink
}

var Options = ProvideSpotify
