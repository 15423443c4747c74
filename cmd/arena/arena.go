package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rangedcombat/levels"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/session"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	noticeFrames = 120
)

// Arena drives one session for the viewer or a headless run.
type Arena struct {
	cfg     session.Config
	store   *molds.Store
	level   *levels.Level
	watcher *molds.Watcher
	log     *slog.Logger

	sess   *session.Session
	paused bool
	frames int

	clipboardReady bool
	notice         string
	noticeUntil    int
}

func NewArena(cfg session.Config, store *molds.Store, lvl *levels.Level, watcher *molds.Watcher, logger *slog.Logger) (*Arena, error) {
	a := &Arena{
		cfg:     cfg,
		store:   store,
		level:   lvl,
		watcher: watcher,
		log:     logger.With("component", "arena"),
	}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) restart() error {
	if a.sess != nil {
		a.sess.Close()
	}
	s, err := session.New(a.cfg, a.store, a.log)
	if err != nil {
		return err
	}
	if err := s.Load(a.level); err != nil {
		return err
	}
	a.sess = s
	return nil
}

// step applies pending mold reloads, then advances the session one tick.
func (a *Arena) step() {
	if n := a.watcher.Apply(a.store); n > 0 {
		a.sess.Refresh()
		a.say(fmt.Sprintf("reloaded %d mold file(s)", n))
	}
	a.sess.Update(a.cfg.Step())
}

// RunFor advances the session by d of simulated time without a window.
func (a *Arena) RunFor(d time.Duration) session.Report {
	end := a.sess.Now() + d
	for a.sess.Now() < end {
		a.step()
	}
	return a.sess.Report()
}

func (a *Arena) Report() session.Report {
	return a.sess.Report()
}

func (a *Arena) Update() error {
	a.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.restart(); err != nil {
			return err
		}
		a.say("restarted " + a.level.Name)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyReport()
	}

	if !a.paused {
		a.step()
	}
	return nil
}

func (a *Arena) copyReport() {
	if !a.clipboardReady {
		if err := clipboard.Init(); err != nil {
			a.log.Warn("clipboard unavailable", "err", err)
			a.say("clipboard unavailable")
			return
		}
		a.clipboardReady = true
	}
	clipboard.Write(clipboard.FmtText, []byte(a.sess.Report().String()))
	a.say("report copied")
}

func (a *Arena) say(msg string) {
	a.notice = msg
	a.noticeUntil = a.frames + noticeFrames
}

func (a *Arena) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (a *Arena) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
