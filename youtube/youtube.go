package youtube

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
)

const (
	watchURL = "https://www.youtube.com/watch?v="
	// musicCategory is the YouTube video category for music.
	musicCategory = "10"
)

type YouTubeClient struct {
	Service *yt.Service
}

// ProvideYouTube returns a search client when an API key is configured.
func ProvideYouTube(cfg config.Config, log *zap.SugaredLogger) (*YouTubeClient, error) {
	if cfg.YouTubeAPIKey == "" {
		log.Info("youtube api key not set, youtube links disabled")
		return &YouTubeClient{}, nil
	}
	return NewYouTubeClient(context.Background(), option.WithAPIKey(cfg.YouTubeAPIKey))
}

func NewYouTubeClient(ctx context.Context, opts ...option.ClientOption) (*YouTubeClient, error) {
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: %w", err)
	}
	return &YouTubeClient{Service: svc}, nil
}

func (c *YouTubeClient) Enabled() bool {
	return c != nil && c.Service != nil
}

func (*YouTubeClient) Name() string {
	return "youtube"
}

// Link returns the watch URL of the top video result for "name artist".
func (c *YouTubeClient) Link(ctx context.Context, name, artist string) (string, error) {
	resp, err := c.Service.Search.List([]string{"id", "snippet"}).
		Q(name + " " + artist).
		Type("video").
		VideoCategoryId(musicCategory).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube search: %w", err)
	}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			return watchURL + item.Id.VideoId, nil
		}
	}
	return "", cochlea.ErrNoLink
}

var Options = ProvideYouTube
