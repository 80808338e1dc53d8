package linker

import (
	"go.uber.org/zap"

	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/musicbrainz"
	"github.com/mager/cochlea/spotify"
	"github.com/mager/cochlea/youtube"
)

// ProvideEnricher enables every provider that is configured.
func ProvideEnricher(
	cfg config.Config,
	log *zap.SugaredLogger,
	yt *youtube.YouTubeClient,
	sp *spotify.SpotifyClient,
	mb *musicbrainz.MusicbrainzClient,
) *Enricher {
	var linkers []Linker
	if yt.Enabled() {
		linkers = append(linkers, yt)
	}
	if sp.Enabled() {
		linkers = append(linkers, sp)
	}
	if mb.Enabled() {
		linkers = append(linkers, mb)
	}

	e := NewEnricher(log, Settings{
		Timeout:     cfg.LookupTimeout,
		Concurrency: cfg.LookupConcurrency,
		Rate:        cfg.LookupRate,
	}, linkers...)
	log.Infow("Link providers", "providers", e.Providers())
	return e
}

var Options = ProvideEnricher
