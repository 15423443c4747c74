package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/projectile"
	"golang.org/x/image/colornames"
)

const (
	// pixels per world metre
	zoom    = 22.0
	originX = baseWidth / 2
	originY = baseHeight - 80
)

// screen maps the ground plane onto the window, +Z pointing up.
func screen(p common.Vec3) (float32, float32) {
	return float32(originX + p.X*zoom), float32(originY - p.Z*zoom)
}

func factionColor(f component.Faction) color.Color {
	switch f {
	case component.FactionFriendly:
		return colornames.Seagreen
	case component.FactionEnemy:
		return colornames.Crimson
	default:
		return colornames.Gold
	}
}

func (a *Arena) Draw(dst *ebiten.Image) {
	dst.Fill(colornames.Darkslategray)
	s := a.sess

	for _, w := range s.Space().Walls() {
		x0, y0 := screen(common.V3(w.Min.X, 0, w.Max.Z))
		x1, y1 := screen(common.V3(w.Max.X, 0, w.Min.Z))
		vector.FillRect(dst, x0, y0, x1-x0, y1-y0, colornames.Slategray, false)
		vector.StrokeRect(dst, x0, y0, x1-x0, y1-y0, 1, colornames.Lightgrey, false)
	}

	for _, t := range s.Targets() {
		x, y := screen(t.Body.Position())
		clr := factionColor(t.Faction)
		if !t.Health.IsAlive() {
			clr = colornames.Dimgray
		}
		vector.FillCircle(dst, x, y, float32(0.5*zoom), clr, true)
		drawHealth(dst, x, y, t.Health)
	}

	for _, t := range s.Turrets() {
		pose := t.FirePoint()
		x, y := screen(pose.Position)
		tip := pose.Position.Add(pose.Forward.Scale(1.2))
		tx, ty := screen(tip)
		r := float32(t.Pattern().Mold().FiringRadius * zoom)
		vector.StrokeCircle(dst, x, y, r, 1, color.RGBA{R: 255, G: 255, B: 255, A: 40}, true)
		vector.FillCircle(dst, x, y, float32(0.45*zoom), colornames.Steelblue, true)
		vector.StrokeCircle(dst, x, y, float32(0.45*zoom), 2, factionColor(t.Faction()), true)
		vector.StrokeLine(dst, x, y, tx, ty, 3, colornames.Lightgrey, true)
		if target, ok := t.Aim().Target(); ok {
			gx, gy := screen(component.PositionOf(target))
			vector.StrokeLine(dst, x, y, gx, gy, 1, color.RGBA{R: 255, A: 90}, true)
		}
		if h := t.Health(); h != nil {
			drawHealth(dst, x, y, h)
		}
	}

	for _, p := range s.Pool().Active() {
		x, y := screen(p.Position())
		clr := colornames.White
		if p.State() == projectile.StateLingering {
			clr = colornames.Orange
		}
		vector.FillCircle(dst, x, y, 2.5, clr, true)
	}

	hud := s.Report().String()
	if a.paused {
		hud = "PAUSED\n" + hud
	}
	if a.frames < a.noticeUntil {
		hud += "\n" + a.notice
	}
	hud += fmt.Sprintf("\nFPS: %.1f  [space] pause  [r] restart  [c] copy report  [esc] quit", ebiten.ActualFPS())
	ebitenutil.DebugPrint(dst, hud)
}

func drawHealth(dst *ebiten.Image, x, y float32, h *component.Health) {
	const w = 28
	frac := float32(h.CurrentHealth()) / float32(h.Max)
	top := y - float32(0.5*zoom) - 8
	vector.FillRect(dst, x-w/2, top, w, 4, colornames.Black, false)
	vector.FillRect(dst, x-w/2, top, w*frac, 4, colornames.Limegreen, false)
}
