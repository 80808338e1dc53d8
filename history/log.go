// Package history remembers the most recently recommended tracks.
package history

import "github.com/mager/cochlea/cochlea"

// DefaultSize is how many pairs the history keeps.
const DefaultSize = 10

// Log is a bounded append-only ring of pairs. It is not safe for concurrent
// use; Recorder guards it.
type Log struct {
	buf   []cochlea.Pair
	start int
	n     int
}

func NewLog(size int) *Log {
	if size <= 0 {
		size = DefaultSize
	}
	return &Log{buf: make([]cochlea.Pair, size)}
}

// Add appends pairs, evicting the oldest once the log is full.
func (l *Log) Add(pairs ...cochlea.Pair) {
	for _, p := range pairs {
		end := (l.start + l.n) % len(l.buf)
		l.buf[end] = p
		if l.n < len(l.buf) {
			l.n++
		} else {
			l.start = (l.start + 1) % len(l.buf)
		}
	}
}

// Entries returns the pairs oldest first.
func (l *Log) Entries() []cochlea.Pair {
	out := make([]cochlea.Pair, l.n)
	for i := 0; i < l.n; i++ {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}

func (l *Log) Len() int {
	return l.n
}

func (l *Log) Cap() int {
	return len(l.buf)
}
