// Command arena runs a combat level, either in a top-down debug viewer or
// headless for a fixed duration, and reports what every turret did.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rangedcombat/levels"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/session"
)

func main() {
	levelName := flag.String("level", levels.DefaultLevel, "level name in levels/ (basename, .yaml optional) or a path to a level file")
	configPath := flag.String("config", "", "session config YAML")
	moldsDir := flag.String("molds", "", "directory with mold overrides (weapons.yaml, projectiles.yaml, curves/)")
	watch := flag.Bool("watch", false, "reload molds from -molds when they change")
	headless := flag.Bool("headless", false, "run without a window and print the report")
	duration := flag.Duration("duration", 30*time.Second, "simulated time to run in headless mode")
	debug := flag.Bool("debug", false, "enable debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg := session.DefaultConfig()
	if *configPath != "" {
		c, err := session.LoadConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = c
	}
	level := cfg.Level()
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := molds.LoadStore(*moldsDir, logger)
	if err != nil {
		fatal(err)
	}
	attacks, projectiles := store.Names()
	logger.Info("molds loaded", "attacks", attacks, "projectiles", projectiles)
	lvl, err := loadLevel(*levelName)
	if err != nil {
		fatal(err)
	}

	var watcher *molds.Watcher
	if *watch {
		if *moldsDir == "" {
			fatal(errors.New("-watch needs -molds"))
		}
		watcher, err = molds.NewWatcher(*moldsDir)
		if err != nil {
			fatal(err)
		}
		defer watcher.Close()
		logger.Info("watching molds", "dir", *moldsDir)
	}

	arena, err := NewArena(cfg, store, lvl, watcher, logger)
	if err != nil {
		fatal(err)
	}

	if *headless {
		report := arena.RunFor(*duration)
		logger.Info("run finished", "elapsed", report.Elapsed, "hits", report.Impacts.Hits, "damage", report.Impacts.Damage)
		fmt.Print(report)
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("arena: " + lvl.Name)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(arena); err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err)
	}
	fmt.Print(arena.Report())
}

// loadLevel prefers a file on disk and falls back to the embedded levels.
func loadLevel(name string) (*levels.Level, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return levels.LoadLevel(name)
	}
	return levels.LoadLevelFromFS(name)
}

func fatal(err error) {
	slog.Error("arena", "err", err)
	os.Exit(1)
}
