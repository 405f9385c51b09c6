package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/pong/internal/config"
	"github.com/Garsondee/pong/internal/game"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 keeps the configured value)")
	firstTo := flag.Int("first-to", 0, "winning score (0 keeps the configured value)")
	left := flag.String("left", "", "left paddle controller: human or ai")
	right := flag.String("right", "", "right paddle controller: human or ai")
	mute := flag.Bool("mute", false, "disable sound effects")
	sounds := flag.String("sounds", "", "directory holding paddle_hit.wav, wall_bounce.wav and score.wav")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *firstTo != 0 {
		cfg.WinningScore = *firstTo
	}
	if *left != "" {
		cfg.Left = *left
	}
	if *right != "" {
		cfg.Right = *right
	}
	if *mute {
		cfg.Sound.Mute = true
	}
	if *sounds != "" {
		cfg.Sound.Dir = *sounds
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	for _, err := range g.Sounds().Missing() {
		log.Printf("sound disabled: %v", err)
	}

	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowSize(cfg.Court.Width, cfg.Court.Height)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
