package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     int    `default:"8080"`
	LogLevel string `default:"info"`

	// CatalogPath points at the song CSV (spotify_songs.csv layout).
	CatalogPath    string   `default:"spotify_songs.csv"`
	CategoryColumn string   `default:"playlist_subgenre"`
	Modes          []string `default:"tempo,mood,dance"`
	// DefaultMode is empty to serve the first of Modes by default.
	DefaultMode    string
	Neighbors      int      `default:"10"`
	MatchMode      string   `default:"substring"`

	// HistoryBackend is one of file, postgres, firestore or none.
	HistoryBackend   string `default:"file"`
	HistoryPath      string `default:"recommendations.json"`
	HistorySize      int    `default:"10"`
	DatabaseURL      string
	FirestoreProject string

	YouTubeAPIKey      string `envconfig:"YOUTUBE_API_KEY"`
	SpotifyID          string
	SpotifySecret      string
	MusicBrainzEnabled bool          `default:"false"`
	LookupTimeout      time.Duration `default:"5s"`
	LookupConcurrency  int           `default:"4"`
	LookupRate         float64       `default:"10"`
}

// Load reads the configuration from COCHLEA_* environment variables.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("cochlea", &cfg)
	return cfg, err
}

func ProvideConfig() (Config, error) {
	return Load()
}

var Options = ProvideConfig
