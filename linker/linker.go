// Package linker annotates recommended tracks with links from external
// search services. Lookups are best effort: a failed or empty lookup leaves
// that one link out and never fails the batch.
package linker

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/metrics"
)

// Linker finds a URL for one track on one service.
type Linker interface {
	Name() string
	// Link returns cochlea.ErrNoLink when the service has no result.
	Link(ctx context.Context, name, artist string) (string, error)
}

type Settings struct {
	// Timeout bounds each individual lookup.
	Timeout time.Duration
	// Concurrency is the number of lookups in flight per Enrich call.
	Concurrency int
	// Rate is lookups per second allowed per provider. 0 disables limiting.
	Rate float64
	// FailureThreshold consecutive failures open a provider's breaker.
	FailureThreshold uint32
	// CoolDown is how long an open breaker rejects calls.
	CoolDown time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	if s.Concurrency <= 0 {
		s.Concurrency = 4
	}
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	if s.CoolDown <= 0 {
		s.CoolDown = 30 * time.Second
	}
	return s
}

type provider struct {
	linker  Linker
	breaker *gobreaker.CircuitBreaker[string]
	limiter *rate.Limiter
}

type Enricher struct {
	log       *zap.SugaredLogger
	settings  Settings
	providers []*provider
}

func NewEnricher(log *zap.SugaredLogger, s Settings, linkers ...Linker) *Enricher {
	s = s.withDefaults()
	e := &Enricher{log: log, settings: s}

	for _, l := range linkers {
		p := &provider{linker: l}
		p.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:    l.Name(),
			Timeout: s.CoolDown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= s.FailureThreshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, cochlea.ErrNoLink)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warnw("Link provider breaker changed state", "provider", name, "from", from.String(), "to", to.String())
			},
		})
		if s.Rate > 0 {
			burst := int(s.Rate)
			if burst < 1 {
				burst = 1
			}
			p.limiter = rate.NewLimiter(rate.Limit(s.Rate), burst)
		}
		e.providers = append(e.providers, p)
	}
	return e
}

// Providers lists the configured provider names.
func (e *Enricher) Providers() []string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.linker.Name()
	}
	return names
}

// Enrich returns a copy of tracks with Links filled from every provider.
func (e *Enricher) Enrich(ctx context.Context, tracks []cochlea.Track) []cochlea.Track {
	out := make([]cochlea.Track, len(tracks))
	copy(out, tracks)
	if len(e.providers) == 0 || len(tracks) == 0 {
		return out
	}

	// links[i][j] is track i on provider j; each slot has a single writer.
	links := make([][]string, len(tracks))
	for i := range links {
		links[i] = make([]string, len(e.providers))
	}

	var g errgroup.Group
	g.SetLimit(e.settings.Concurrency)
	for i, t := range tracks {
		for j, p := range e.providers {
			g.Go(func() error {
				links[i][j] = e.lookup(ctx, p, t)
				return nil
			})
		}
	}
	g.Wait()

	for i := range out {
		for j, p := range e.providers {
			if links[i][j] == "" {
				continue
			}
			if out[i].Links == nil {
				out[i].Links = make(map[string]string, len(e.providers))
			}
			out[i].Links[p.linker.Name()] = links[i][j]
		}
	}
	return out
}

func (e *Enricher) lookup(ctx context.Context, p *provider, t cochlea.Track) string {
	name := p.linker.Name()
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			metrics.LinkLookups.WithLabelValues(name, "timeout").Inc()
			return ""
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.settings.Timeout)
	defer cancel()

	start := time.Now()
	url, err := p.breaker.Execute(func() (string, error) {
		return p.linker.Link(ctx, t.Name, t.Artist)
	})
	metrics.LinkLookupDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.LinkLookups.WithLabelValues(name, "hit").Inc()
		return url
	case errors.Is(err, cochlea.ErrNoLink):
		metrics.LinkLookups.WithLabelValues(name, "miss").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.LinkLookups.WithLabelValues(name, "open").Inc()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		metrics.LinkLookups.WithLabelValues(name, "timeout").Inc()
		e.log.Debugw("Link lookup timed out", "provider", name, "track", t.Name, "artist", t.Artist)
	default:
		metrics.LinkLookups.WithLabelValues(name, "error").Inc()
		e.log.Warnw("Link lookup failed", "provider", name, "track", t.Name, "artist", t.Artist, "error", err)
	}
	return ""
}
