package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Bottle-Shot/internal/game"
	"github.com/Garsondee/Bottle-Shot/internal/screen"
	"github.com/Garsondee/Bottle-Shot/internal/sound"
)

func main() {
	var seed int64
	var muted bool
	var scale float64
	var volume float64
	var debug bool

	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "level layout seed")
	flag.BoolVar(&muted, "muted", false, "start with sound off")
	flag.Float64Var(&scale, "scale", 1, "window scale")
	flag.Float64Var(&volume, "volume", 0.6, "effects volume 0..1")
	flag.BoolVar(&debug, "debug", false, "debug logging and overlay")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := game.DefaultConfig()
	cfg.Seed = seed

	opts := []game.Option{game.WithLogger(logger), game.WithMuted(muted)}
	player, err := sound.NewPlayer(logger, volume)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
	} else {
		player.Preload()
		defer player.Close()
		opts = append(opts, game.WithCueSink(player))
	}

	drv, err := game.NewDriver(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("starting", "seed", seed, "muted", muted)

	ebiten.SetWindowTitle("Bottle Shot")
	ebiten.SetWindowSize(int(float64(cfg.Width)*scale), int(float64(cfg.Height)*scale))
	if err := ebiten.RunGame(screen.New(drv, screen.WithLogger(logger), screen.WithDebug(debug))); err != nil {
		log.Fatal(err)
	}
}
