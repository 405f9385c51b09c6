package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Garsondee/pong/internal/config"
)

func testAIPaddle(side Side) *Paddle {
	cfg := config.Default()
	return NewPaddle(side, ControllerAI, cfg.Court.Width, cfg.Court.Height, cfg.Paddle, cfg.AI)
}

func TestNewPaddle_Placement(t *testing.T) {
	l, r := testPaddle(SideLeft), testPaddle(SideRight)
	if l.X != 10 {
		t.Fatalf("left paddle x should be the inset 10, got %.1f", l.X)
	}
	if r.X != 780 {
		t.Fatalf("right paddle x should be 800-10-10=780, got %.1f", r.X)
	}
	if l.Y != 250 || r.Y != 250 {
		t.Fatalf("paddles should start centred at y=250, got %.1f and %.1f", l.Y, r.Y)
	}
}

func TestPaddleMove_ClampsToCourt(t *testing.T) {
	p := testPaddle(SideLeft)
	p.Move(-1000, 600)
	if p.Y != 0 {
		t.Fatalf("expected y=0 at the top wall, got %.1f", p.Y)
	}
	p.Move(1000, 600)
	if p.Y != 500 {
		t.Fatalf("expected y=500 at the bottom wall, got %.1f", p.Y)
	}
}

func TestPaddleDrive(t *testing.T) {
	p := testPaddle(SideLeft)
	p.Drive(-1, 600)
	if p.Y != 240 {
		t.Fatalf("up should move by speed 10, got y=%.1f", p.Y)
	}
	p.Drive(0, 600)
	if p.Y != 240 {
		t.Fatalf("no input should not move, got y=%.1f", p.Y)
	}
	p.Drive(1, 600)
	p.Drive(1, 600)
	if p.Y != 260 {
		t.Fatalf("down twice should reach y=260, got %.1f", p.Y)
	}
}

func TestAutoTrack_FollowsIncomingBall(t *testing.T) {
	p := testAIPaddle(SideRight)
	b := testBall(400, 100, 7, 0)
	p.AutoTrack(b, 600)
	if p.Y != 244 {
		t.Fatalf("AI should move up by its speed 6, got y=%.1f", p.Y)
	}
	for i := 0; i < 100; i++ {
		p.AutoTrack(b, 600)
	}
	if d := p.CentreY() - b.Y; d > 3 || d < -3 {
		t.Fatalf("AI should settle within the dead zone of the ball, off by %.1f", d)
	}
}

func TestAutoTrack_ReturnsToCentreWhenBallLeaves(t *testing.T) {
	p := testAIPaddle(SideRight)
	p.Y = 0
	b := testBall(400, 100, -7, 0)
	for i := 0; i < 100; i++ {
		p.AutoTrack(b, 600)
	}
	if d := p.CentreY() - 300; d > 3 || d < -3 {
		t.Fatalf("AI should drift back to centre, centre y=%.1f", p.CentreY())
	}
}

func TestAutoTrack_DeadZone(t *testing.T) {
	p := testAIPaddle(SideLeft)
	b := testBall(400, p.CentreY()+2, -7, 0)
	y := p.Y
	p.AutoTrack(b, 600)
	if p.Y != y {
		t.Fatalf("AI should not jitter inside the dead zone, moved %.1f", p.Y-y)
	}
}

func TestRetarget_WithinRange(t *testing.T) {
	p := testAIPaddle(SideLeft)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		p.Retarget(rng)
		if off := p.AimOffset(); off < -25 || off > 25 {
			t.Fatalf("aim offset %.2f outside ±25", off)
		}
	}
	p.Retarget(nil)
	if p.AimOffset() != 0 {
		t.Fatalf("nil rng should clear the offset, got %.2f", p.AimOffset())
	}
}

func TestParseController(t *testing.T) {
	tests := []struct {
		in      string
		want    Controller
		wantErr bool
	}{
		{"human", ControllerHuman, false},
		{"AI", ControllerAI, false},
		{" ai ", ControllerAI, false},
		{"robot", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseController(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownController) {
				t.Errorf("%q: expected ErrUnknownController, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestSide(t *testing.T) {
	if SideLeft.Opponent() != SideRight || SideRight.Opponent() != SideLeft {
		t.Fatal("opponents should swap")
	}
	if SideNone.Opponent() != SideNone {
		t.Fatal("none has no opponent")
	}
	if SideLeft.Away() != 1 || SideRight.Away() != -1 {
		t.Fatal("balls should leave each paddle toward the other side")
	}
	if SideLeft.Label() != "L" || SideRight.Label() != "R" || SideNone.Label() != "--" {
		t.Fatal("unexpected labels")
	}
}
