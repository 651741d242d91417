// Package sound plays the completion chime on the terminal bell.
package sound

import (
	"bytes"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

type Sound string

const (
	Bell  Sound = "bell"
	Bowl  Sound = "bowl"
	Chime Sound = "chime"
	None  Sound = "none"
)

// All lists the selectable sounds in display order.
var All = []Sound{Bell, Bowl, Chime, None}

// Number of BEL characters per sound.
var rings = map[Sound]int{
	Bell:  1,
	Bowl:  2,
	Chime: 3,
}

// Player rings the bell on w. A nil writer makes every call a no-op.
type Player struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPlayer(w io.Writer) *Player {
	return &Player{w: w}
}

// Parse maps a settings value to a Sound, defaulting to Bell.
func Parse(s string) Sound {
	switch Sound(s) {
	case Bell, Bowl, Chime, None:
		return Sound(s)
	}
	return Bell
}

// Play rings the pattern for s. Failures are logged and swallowed.
func (p *Player) Play(s Sound) {
	n := rings[s]
	if p == nil || p.w == nil || n == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(bytes.Repeat([]byte{'\a'}, n)); err != nil {
		log.Warn().Err(err).Str("sound", string(s)).Msg("play sound")
	}
}

// PlayCompletion plays the configured completion chime.
func (p *Player) PlayCompletion(chime string) {
	p.Play(Parse(chime))
}
