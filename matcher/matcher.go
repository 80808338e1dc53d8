// Package matcher resolves free-text song and artist input to one catalog row.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mager/cochlea/catalog"
)

// Mode determines how catalog rows are compared to the query.
type Mode string

const (
	ModeSubstring Mode = "substring" // default: case-insensitive containment, first row wins
	ModeExact     Mode = "exact"     // case-insensitive equality, first row wins
	ModeFuzzy     Mode = "fuzzy"     // Levenshtein similarity >= FuzzyCutoff, best score wins
)

// FuzzyCutoff is the minimum normalized similarity both fields need in ModeFuzzy.
const FuzzyCutoff = 0.6

var (
	// ErrNoMatch is matched by every *NoMatchFoundError.
	ErrNoMatch    = errors.New("matcher: no match found")
	ErrEmptyQuery = errors.New("matcher: song and artist are both required")
)

type NoMatchFoundError struct {
	Song   string
	Artist string
}

func (e *NoMatchFoundError) Error() string {
	return fmt.Sprintf("No close match found for '%s' by '%s' in the dataset.", e.Song, e.Artist)
}

func (e *NoMatchFoundError) Is(target error) bool {
	return target == ErrNoMatch
}

// ParseMode maps a config value to a Mode. The empty string is ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeExact, ModeFuzzy:
		return m, nil
	default:
		return "", fmt.Errorf("matcher: unknown mode %q", s)
	}
}

// Matcher holds lowercased copies of the catalog identities so matching
// does not fold case per row per request.
type Matcher struct {
	mode    Mode
	names   []string
	artists []string
}

func New(entries []catalog.Entry, mode Mode) *Matcher {
	if mode == "" {
		mode = ModeSubstring
	}
	m := &Matcher{
		mode:    mode,
		names:   make([]string, len(entries)),
		artists: make([]string, len(entries)),
	}
	for i, e := range entries {
		m.names[i] = strings.ToLower(e.Name)
		m.artists[i] = strings.ToLower(e.Artist)
	}
	return m
}

func (m *Matcher) Mode() Mode {
	return m.mode
}

// Match returns the catalog row for song and artist. The result only depends
// on the catalog order and the input, never on earlier calls.
func (m *Matcher) Match(song, artist string) (int, error) {
	qs := strings.ToLower(strings.TrimSpace(song))
	qa := strings.ToLower(strings.TrimSpace(artist))
	if qs == "" || qa == "" {
		return -1, ErrEmptyQuery
	}

	row := -1
	switch m.mode {
	case ModeExact:
		row = m.first(func(i int) bool {
			return m.names[i] == qs && m.artists[i] == qa
		})
	case ModeFuzzy:
		row = m.best(qs, qa)
	default:
		row = m.first(func(i int) bool {
			return strings.Contains(m.names[i], qs) && strings.Contains(m.artists[i], qa)
		})
	}

	if row < 0 {
		return -1, &NoMatchFoundError{Song: song, Artist: artist}
	}
	return row, nil
}

func (m *Matcher) first(match func(i int) bool) int {
	for i := range m.names {
		if match(i) {
			return i
		}
	}
	return -1
}

func (m *Matcher) best(qs, qa string) int {
	row, top := -1, 0.0
	for i := range m.names {
		ns := similarity(m.names[i], qs)
		if ns < FuzzyCutoff {
			continue
		}
		as := similarity(m.artists[i], qa)
		if as < FuzzyCutoff {
			continue
		}
		if score := ns + as; score > top {
			row, top = i, score
		}
	}
	return row
}

// similarity returns a normalized similarity score [0.0, 1.0] using Levenshtein distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
