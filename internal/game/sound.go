package game

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SoundID names a sound effect slot.
type SoundID int

const (
	SoundPaddleHit SoundID = iota
	SoundWallBounce
	SoundScore
	soundCount
)

func (id SoundID) String() string {
	switch id {
	case SoundPaddleHit:
		return "paddle_hit"
	case SoundWallBounce:
		return "wall_bounce"
	case SoundScore:
		return "score"
	default:
		return "unknown"
	}
}

// soundFor maps a match event to the effect it plays, if any.
func soundFor(k EventKind) (SoundID, bool) {
	switch k {
	case EventPaddleHit:
		return SoundPaddleHit, true
	case EventWallBounce:
		return SoundWallBounce, true
	case EventScore:
		return SoundScore, true
	}
	return 0, false
}

// sfxPlayer is the part of *audio.Player the bank uses.
type sfxPlayer interface {
	Play()
	SetPosition(offset time.Duration) error
	SetVolume(volume float64)
}

// SoundBank is the table of loaded effects. A slot whose file was missing or
// unreadable stays empty and plays nothing. A nil bank is valid and silent.
type SoundBank struct {
	players [soundCount]sfxPlayer
	missing []error
}

// LoadSoundBank reads <dir>/<name>.wav for every effect. It never fails: a
// file that cannot be loaded only disables its own slot, and the reason is
// kept for Missing.
func LoadSoundBank(ctx *audio.Context, dir string, volume float64) *SoundBank {
	sb := &SoundBank{}
	for id := SoundID(0); id < soundCount; id++ {
		path := filepath.Join(dir, id.String()+".wav")
		p, err := loadWAV(ctx, path)
		if err != nil {
			sb.missing = append(sb.missing, err)
			continue
		}
		p.SetVolume(volume)
		sb.players[id] = p
	}
	return sb
}

func loadWAV(ctx *audio.Context, path string) (*audio.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sound: %w", err)
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	return ctx.NewPlayerFromBytes(pcm), nil
}

// Enabled reports whether id has a loaded effect.
func (sb *SoundBank) Enabled(id SoundID) bool {
	if sb == nil || id < 0 || id >= soundCount {
		return false
	}
	return sb.players[id] != nil
}

// Loaded is the number of effects available.
func (sb *SoundBank) Loaded() int {
	n := 0
	for id := SoundID(0); id < soundCount; id++ {
		if sb.Enabled(id) {
			n++
		}
	}
	return n
}

// Missing lists why each disabled slot could not be loaded.
func (sb *SoundBank) Missing() []error {
	if sb == nil {
		return nil
	}
	return sb.missing
}

// Play restarts the effect from the beginning.
func (sb *SoundBank) Play(id SoundID) {
	if !sb.Enabled(id) {
		return
	}
	p := sb.players[id]
	if err := p.SetPosition(0); err != nil {
		return
	}
	p.Play()
}

// PlayFor plays the effect belonging to e, if it has one.
func (sb *SoundBank) PlayFor(e Event) {
	if id, ok := soundFor(e.Kind); ok {
		sb.Play(id)
	}
}
