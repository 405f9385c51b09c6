package game

import (
	"bytes"
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/pong/internal/config"
)

// audioSampleRate is the rate every effect is resampled to.
const audioSampleRate = 44100

// statusTicks is how long a HUD status message stays up (~2s at 60TPS).
const statusTicks = 120

// simSpeeds are the selectable speed multipliers, slowest first.
var simSpeeds = []float64{0.5, 1, 2, 4}

var (
	courtColor  = color.RGBA{A: 255}
	inkColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dimColor    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	shadeColor  = color.RGBA{A: 160}
	statusColor = color.RGBA{R: 120, G: 220, B: 140, A: 255}
)

// Game adapts a Match to ebiten: it turns key state into Input, runs the
// match at the selected sim speed and draws the court.
type Game struct {
	cfg    config.Config
	match  *Match
	sounds *SoundBank

	scoreFace  *text.GoTextFace
	bannerFace *text.GoTextFace
	hintFace   *text.GoTextFace

	prevKeys map[ebiten.Key]bool
	// pending holds edge-triggered input until a tick consumes it, so a key
	// tapped on a frame with no sim tick (speeds below 1x) is not lost.
	pending Input

	showFeed bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	status      string
	statusUntil int
	frames      int
}

// New builds a game from cfg. Sound is loaded from cfg.Sound.Dir unless
// muted; missing effects are not an error (see Sounds().Missing()).
func New(cfg config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- gameplay only
	m, err := NewMatch(cfg, rng)
	if err != nil {
		return nil, err
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		match:      m,
		scoreFace:  &text.GoTextFace{Source: src, Size: 48},
		bannerFace: &text.GoTextFace{Source: src, Size: 40},
		hintFace:   &text.GoTextFace{Source: src, Size: 20},
		prevKeys:   make(map[ebiten.Key]bool),
		simSpeed:   1.0,
	}
	if !cfg.Sound.Mute {
		g.sounds = LoadSoundBank(audio.NewContext(audioSampleRate), cfg.Sound.Dir, cfg.Sound.Volume)
		m.SetSounds(g.sounds)
	}
	return g, nil
}

// Match exposes the running match.
func (g *Game) Match() *Match {
	return g.match
}

// Sounds returns the loaded sound bank, nil when muted.
func (g *Game) Sounds() *SoundBank {
	return g.sounds
}

func (g *Game) Update() error {
	g.frames++
	in := g.handleInput()

	if in.Quit {
		g.match.Step(in)
		return ebiten.Termination
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		in.TogglePause = g.pending.TogglePause
		in.NewGame = g.pending.NewGame
		g.pending = Input{}
		g.match.Step(in)
	}
	return nil
}

// handleInput reads held keys for paddle motion and edge-triggered keys for
// everything else. Edge actions are merged into g.pending.
func (g *Game) handleInput() Input {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	var in Input
	in.Left = axis(ebiten.IsKeyPressed(ebiten.KeyW), ebiten.IsKeyPressed(ebiten.KeyS))
	in.Right = axis(ebiten.IsKeyPressed(ebiten.KeyArrowUp), ebiten.IsKeyPressed(ebiten.KeyArrowDown))

	if pressed(ebiten.KeyEscape) {
		in.Quit = true
	}

	// Evaluate both keys so prevKeys tracks each of them.
	p, space := pressed(ebiten.KeyP), pressed(ebiten.KeySpace)
	if (p || space) && !g.match.GameOver {
		g.pending.TogglePause = !g.pending.TogglePause
	}

	replayKeys := [len(ReplayChoices)]ebiten.Key{ebiten.Key3, ebiten.Key5, ebiten.Key7}
	for i, k := range replayKeys {
		if pressed(k) && g.match.GameOver {
			g.pending.NewGame = ReplayChoices[i]
		}
	}

	// C: copy the match summary.
	if pressed(ebiten.KeyC) && g.match.GameOver {
		if err := setClipboardText(g.Summary()); err != nil {
			g.setStatus("clipboard unavailable")
		} else {
			g.setStatus("summary copied")
		}
	}

	// H: toggle the event feed panel.
	if pressed(ebiten.KeyH) {
		g.showFeed = !g.showFeed
	}

	// Sim speed controls: ,=slower, .=faster.
	if pressed(ebiten.KeyComma) {
		g.simSpeed = stepSpeed(g.simSpeed, -1)
	}
	if pressed(ebiten.KeyPeriod) {
		g.simSpeed = stepSpeed(g.simSpeed, +1)
	}

	g.prevKeys = currentKeys
	return in
}

// axis maps an up/down key pair to -1, 0 or +1.
func axis(up, down bool) int {
	switch {
	case up && !down:
		return -1
	case down && !up:
		return 1
	}
	return 0
}

// stepSpeed moves one notch through simSpeeds in direction dir.
func stepSpeed(cur float64, dir int) float64 {
	for i, s := range simSpeeds {
		if s == cur {
			j := i + dir
			if j < 0 || j >= len(simSpeeds) {
				return cur
			}
			return simSpeeds[j]
		}
	}
	return 1.0
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frames + statusTicks
}

// Summary is the outcome line followed by the rally report.
func (g *Game) Summary() string {
	var sb strings.Builder
	sb.WriteString(DetermineOutcome(g.match).Description)
	sb.WriteString("\n")
	sb.WriteString(g.match.Reporter.Summary().Format())
	return sb.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	m := g.match
	w, h := m.CourtSize()
	screen.Fill(courtColor)

	// Dashed centre line.
	cx := float32(w / 2)
	for y := float32(0); y < float32(h); y += 30 {
		vector.StrokeLine(screen, cx, y, cx, y+15, 2, dimColor, false)
	}

	for _, p := range [...]*Paddle{m.Left, m.Right} {
		r := p.Rect()
		vector.FillRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), inkColor, false)
	}
	vector.FillCircle(screen, float32(m.Ball.X), float32(m.Ball.Y), float32(m.Ball.Radius), inkColor, true)

	g.drawText(screen, fmt.Sprint(m.Scores[SideLeft]), g.scoreFace, w/4, 20, inkColor)
	g.drawText(screen, fmt.Sprint(m.Scores[SideRight]), g.scoreFace, 3*w/4, 20, inkColor)

	switch {
	case m.GameOver:
		g.drawOverlay(screen, fmt.Sprintf("%s Wins!", m.Name(m.Winner)),
			"Press 3, 5, 7 for new game or ESC to exit", "C copies the match summary")
	case m.Paused:
		g.drawOverlay(screen, "PAUSED", "P or Space to resume, ESC to exit", "")
	}

	if g.showFeed {
		m.Feed.Draw(screen, int(w)-feedPanelWidth, int(h))
	}
	g.drawHUD(screen)
}

func (g *Game) drawOverlay(screen *ebiten.Image, banner, hint, sub string) {
	w, h := g.match.CourtSize()
	vector.FillRect(screen, 0, 0, float32(w), float32(h), shadeColor, false)
	g.drawText(screen, banner, g.bannerFace, w/2, h/2-60, inkColor)
	g.drawText(screen, hint, g.hintFace, w/2, h/2, inkColor)
	if sub != "" {
		g.drawText(screen, sub, g.hintFace, w/2, h/2+30, dimColor)
	}
}

// drawText draws s horizontally centred on x with its top at y.
func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

// drawHUD prints the speed and first-to target along the bottom edge.
func (g *Game) drawHUD(screen *ebiten.Image) {
	_, h := g.match.CourtSize()
	speedStr := "1x"
	if g.simSpeed != 1 {
		speedStr = fmt.Sprintf("%gx", g.simSpeed)
	}
	line := fmt.Sprintf("first to %d  SIM: %s  ,/. speed  H events", g.match.WinningScore, speedStr)
	ebitenutil.DebugPrintAt(screen, line, 4, int(h)-16)
	if g.status != "" && g.frames < g.statusUntil {
		vector.FillRect(screen, 4, float32(h)-34, float32(len(g.status)*6+8), 16, shadeColor, false)
		ebitenutil.DebugPrintAt(screen, g.status, 8, int(h)-34)
		vector.StrokeLine(screen, 4, float32(h)-18, float32(len(g.status)*6+12), float32(h)-18, 1, statusColor, false)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Court.Width, g.cfg.Court.Height
}
