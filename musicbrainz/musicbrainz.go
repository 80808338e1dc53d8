package musicbrainz

import (
	"context"

	"github.com/mager/musicbrainz-go/musicbrainz"
	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
)

const recordingURL = "https://musicbrainz.org/recording/"

// Searcher is the part of the MusicBrainz API the link lookup uses.
type Searcher interface {
	SearchRecordingsByArtistAndTrack(musicbrainz.SearchRecordingsByArtistAndTrackRequest) (musicbrainz.SearchRecordingsByArtistAndTrackResponse, error)
}

type MusicbrainzClient struct {
	Client Searcher
}

// ProvideMusicbrainz returns a client when MusicBrainz links are enabled, nil otherwise.
func ProvideMusicbrainz(cfg config.Config, log *zap.SugaredLogger) *MusicbrainzClient {
	if !cfg.MusicBrainzEnabled {
		return nil
	}
	log.Info("setting up musicbrainz client")

	mb := musicbrainz.NewMusicbrainzClient()
	mb.Log = log

	return &MusicbrainzClient{Client: mb}
}

func (c *MusicbrainzClient) Enabled() bool {
	return c != nil && c.Client != nil
}

func (*MusicbrainzClient) Name() string {
	return "musicbrainz"
}

// Link returns the first recording matching artist and track. The underlying
// client takes no context, so the search runs in its own goroutine and is
// abandoned when ctx ends.
func (c *MusicbrainzClient) Link(ctx context.Context, name, artist string) (string, error) {
	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)

	go func() {
		resp, err := c.Client.SearchRecordingsByArtistAndTrack(musicbrainz.SearchRecordingsByArtistAndTrackRequest{
			Artist: artist,
			Track:  name,
		})
		if err != nil {
			done <- result{err: err}
			return
		}
		if resp.Count == 0 || len(resp.Recordings) == 0 {
			done <- result{err: cochlea.ErrNoLink}
			return
		}
		done <- result{id: resp.Recordings[0].ID}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return recordingURL + r.id, nil
	}
}

var Options = ProvideMusicbrainz
