// Package cursor implements the cursor animator: a small physics simulation
// that smooths cursor movement and, depending on mode, spawns particles,
// rings, and a trail to decorate the motion. It produces only state; the
// layout/render side serializes that state into the Frame Glyph Buffer, it
// never reads this package's state directly.
package cursor

import (
	"math"
	"strings"
	"time"

	"neomacs.dev/display/f32"
	"neomacs.dev/display/glyph"
)

// Mode selects which decoration a cursor move triggers.
type Mode int

const (
	ModeNone Mode = iota
	ModeSmooth
	ModeRailgun
	ModeTorpedo
	ModePixiedust
	ModeSonicboom
	ModeRipple
	ModeWireframe
)

// ParseMode maps a case-insensitive name to a Mode, defaulting to ModeSmooth
// for anything unrecognized.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "none":
		return ModeNone
	case "railgun":
		return ModeRailgun
	case "torpedo":
		return ModeTorpedo
	case "pixiedust":
		return ModePixiedust
	case "sonicboom":
		return ModeSonicboom
	case "ripple":
		return ModeRipple
	case "wireframe":
		return ModeWireframe
	default:
		return ModeSmooth
	}
}

// Particle is one decorative speck, spawned by railgun/pixiedust modes.
type Particle struct {
	Pos         f32.Point
	Vel         f32.Point
	Size        float32
	InitialSize float32
	Color       glyph.Color
	Birth       time.Time
	Lifetime    time.Duration
}

func (p *Particle) update(dt float32) {
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	p.Vel = p.Vel.Mul(0.95)
}

func (p *Particle) alive(now time.Time) bool {
	return now.Sub(p.Birth) < p.Lifetime
}

func ageFraction(birth time.Time, lifetime time.Duration, now time.Time) float32 {
	age := now.Sub(birth)
	f := float32(age) / float32(lifetime)
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// Opacity fades quadratically to zero exactly at the particle's lifetime.
func (p *Particle) Opacity(now time.Time) float32 {
	f := 1 - ageFraction(p.Birth, p.Lifetime, now)
	return f * f
}

// CurrentSize shrinks linearly to 30% of its initial size over its lifetime.
func (p *Particle) CurrentSize(now time.Time) float32 {
	f := ageFraction(p.Birth, p.Lifetime, now)
	return p.InitialSize * (1 - f*0.7)
}

// Ring is an expanding decorative circle, spawned by sonicboom/ripple modes.
type Ring struct {
	Pos       f32.Point
	Radius    float32
	Speed     float32
	Color     glyph.Color
	Birth     time.Time
	Lifetime  time.Duration
	Thickness float32
}

func (r *Ring) update(dt float32) {
	r.Radius += r.Speed * dt
}

func (r *Ring) alive(now time.Time) bool {
	return now.Sub(r.Birth) < r.Lifetime
}

func (r *Ring) Opacity(now time.Time) float32 {
	f := 1 - ageFraction(r.Birth, r.Lifetime, now)
	return f * f
}

// TrailPoint is one sample of the torpedo mode's motion trail.
type TrailPoint struct {
	Pos  f32.Point
	Time time.Time
}

// Animator holds the cursor's smoothed position and all live decorations.
// Target is set by the host side whenever point or the selected window
// changes; Update advances the simulation by one frame.
type Animator struct {
	Mode Mode

	TargetX, TargetY, TargetW, TargetH   float32
	CurrentX, CurrentY, CurrentW, CurrentH float32
	lastTargetX, lastTargetY             float32
	Style                                 uint8
	Color                                 glyph.Color

	Particles []Particle
	Rings     []Ring
	Trail     []TrailPoint

	animating bool
	visible   bool
	blinkOn   bool
	lastBlink time.Time

	animationSpeed float32
	particleCount  int
	particleLifetime time.Duration
	particleSpeed  float32
	particleSize   float32
	blinkInterval  time.Duration
	maxTrailLength int
}

// NewAnimator returns an Animator with the defaults the original design
// settled on: a 15 Hz smoothing speed, 15 particles per burst, 530ms blink.
func NewAnimator() *Animator {
	return &Animator{
		Mode:           ModeSmooth,
		TargetW:        8.0,
		TargetH:        16.0,
		CurrentW:       8.0,
		CurrentH:       16.0,
		Color:          glyph.White,
		visible:        true,
		blinkOn:        true,
		animationSpeed: 15.0,
		particleCount:  15,
		particleLifetime: 400 * time.Millisecond,
		particleSpeed:  200.0,
		particleSize:   4.0,
		blinkInterval:  530 * time.Millisecond,
		maxTrailLength: 40,
	}
}

// SetMode changes the decoration mode, clearing any decorations the
// previous mode had in flight.
func (a *Animator) SetMode(m Mode) {
	a.Mode = m
	a.Particles = a.Particles[:0]
	a.Rings = a.Rings[:0]
	a.Trail = a.Trail[:0]
}

// SetAnimationSpeed clamps speed to [1, 100].
func (a *Animator) SetAnimationSpeed(speed float32) {
	if speed < 1 {
		speed = 1
	}
	if speed > 100 {
		speed = 100
	}
	a.animationSpeed = speed
}

// SetParticleCount clamps count to [1, 100].
func (a *Animator) SetParticleCount(count int) {
	if count < 1 {
		count = 1
	}
	if count > 100 {
		count = 100
	}
	a.particleCount = count
}

// SetTarget records a new cursor target. now is the caller's wall clock, so
// tests can drive it deterministically. If the target moved by at least
// half a pixel in either axis, blink resets to visible and the mode's
// decorations are spawned.
func (a *Animator) SetTarget(now time.Time, x, y, w, h float32, style uint8, color glyph.Color) {
	dx := x - a.lastTargetX
	dy := y - a.lastTargetY
	moved := abs32(dx) >= 0.5 || abs32(dy) >= 0.5

	a.TargetX, a.TargetY, a.TargetW, a.TargetH = x, y, w, h
	a.Style = style
	a.Color = color
	a.lastTargetX, a.lastTargetY = x, y

	if moved {
		a.onCursorMove(now)
	}
}

func (a *Animator) onCursorMove(now time.Time) {
	a.animating = true
	a.blinkOn = true
	a.lastBlink = now

	dx := a.TargetX - a.CurrentX
	dy := a.TargetY - a.CurrentY
	distance := float32(math.Hypot(float64(dx), float64(dy)))
	if distance < 1.0 {
		return
	}

	centerX := a.CurrentX + a.CurrentW/2
	centerY := a.CurrentY + a.CurrentH/2

	switch a.Mode {
	case ModeRailgun:
		a.spawnRailgun(now, dx, dy, distance, centerX, centerY)
	case ModeTorpedo:
		a.addTrailPoint(now, centerX, centerY)
	case ModePixiedust:
		a.spawnPixiedust(now, centerX, centerY)
	case ModeSonicboom:
		a.spawnSonicboom(now)
	case ModeRipple:
		a.spawnRipple(now)
	}
}

func (a *Animator) spawnRailgun(now time.Time, dx, dy, distance, centerX, centerY float32) {
	normDX := -dx / distance
	normDY := -dy / distance
	center := f32.Point{X: centerX, Y: centerY}
	n := a.particleCount
	for i := 0; i < n; i++ {
		angleOffset := (float64(i)/float64(n) - 0.5) * 0.8
		cos, sin := math.Cos(angleOffset), math.Sin(angleOffset)
		rdx := float32(float64(normDX)*cos - float64(normDY)*sin)
		rdy := float32(float64(normDX)*sin + float64(normDY)*cos)
		randFactor := float32(0.5 + math.Abs(math.Sin(float64(i)*7.13))*0.5)
		a.Particles = append(a.Particles, Particle{
			Pos:         center,
			Vel:         f32.Point{X: rdx, Y: rdy}.Mul(a.particleSpeed * randFactor),
			Size:        a.particleSize * randFactor,
			InitialSize: a.particleSize * randFactor,
			Color:       a.Color,
			Birth:       now,
			Lifetime:    time.Duration(float32(a.particleLifetime) * randFactor),
		})
	}
}

func (a *Animator) spawnPixiedust(now time.Time, centerX, centerY float32) {
	center := f32.Point{X: centerX, Y: centerY}
	n := a.particleCount
	color := a.Color
	color.A *= 0.8
	for i := 0; i < n; i++ {
		angle := math.Mod(float64(i)*2.39996, 2*math.Pi)
		speed := a.particleSpeed * (0.3 + float32(math.Abs(math.Sin(float64(i)*math.Pi)))*0.7)
		a.Particles = append(a.Particles, Particle{
			Pos:         center,
			Vel:         f32.Point{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}.Mul(speed),
			Size:        a.particleSize * 0.7,
			InitialSize: a.particleSize * 0.7,
			Color:       color,
			Birth:       now,
			Lifetime:    a.particleLifetime,
		})
	}
}

func (a *Animator) addTrailPoint(now time.Time, x, y float32) {
	a.Trail = append(a.Trail, TrailPoint{Pos: f32.Point{X: x, Y: y}, Time: now})
	for len(a.Trail) > a.maxTrailLength {
		a.Trail = a.Trail[1:]
	}
}

func (a *Animator) spawnSonicboom(now time.Time) {
	a.Rings = append(a.Rings, Ring{
		Pos:    f32.Point{X: a.TargetX + a.TargetW/2, Y: a.TargetY + a.TargetH/2},
		Radius: 5.0, Speed: 300.0, Color: a.Color,
		Birth: now, Lifetime: 300 * time.Millisecond, Thickness: 3.0,
	})
}

func (a *Animator) spawnRipple(now time.Time) {
	center := f32.Point{X: a.TargetX + a.TargetW/2, Y: a.TargetY + a.TargetH/2}
	for i := 0; i < 3; i++ {
		a.Rings = append(a.Rings, Ring{
			Pos:    center,
			Radius: 2.0 + float32(i)*8.0,
			Speed:  150.0 - float32(i)*20.0,
			Color:  a.Color,
			Birth:  now, Lifetime: 400*time.Millisecond + time.Duration(i)*50*time.Millisecond,
			Thickness: 2.0,
		})
	}
}

// Update advances the simulation by dt, using now as the wall clock for
// blink and particle/ring/trail aging. It returns whether anything is still
// in motion (smoothing, a live particle, ring, or trail point) so the
// caller knows whether to keep scheduling frames.
func (a *Animator) Update(now time.Time, dt float32) bool {
	if now.Sub(a.lastBlink) >= a.blinkInterval {
		a.blinkOn = !a.blinkOn
		a.lastBlink = now
	}

	if a.Mode != ModeNone {
		factor := 1 - float32(math.Exp(-float64(a.animationSpeed)*float64(dt)))
		a.CurrentX += (a.TargetX - a.CurrentX) * factor
		a.CurrentY += (a.TargetY - a.CurrentY) * factor
		a.CurrentW += (a.TargetW - a.CurrentW) * factor
		a.CurrentH += (a.TargetH - a.CurrentH) * factor
		if abs32(a.TargetX-a.CurrentX) < 0.5 && abs32(a.TargetY-a.CurrentY) < 0.5 {
			a.CurrentX, a.CurrentY, a.CurrentW, a.CurrentH = a.TargetX, a.TargetY, a.TargetW, a.TargetH
			a.animating = false
		}
	} else {
		a.CurrentX, a.CurrentY, a.CurrentW, a.CurrentH = a.TargetX, a.TargetY, a.TargetW, a.TargetH
		a.animating = false
	}

	live := a.Particles[:0]
	for i := range a.Particles {
		p := &a.Particles[i]
		p.update(dt)
		if p.alive(now) {
			live = append(live, *p)
		}
	}
	a.Particles = live

	liveRings := a.Rings[:0]
	for i := range a.Rings {
		r := &a.Rings[i]
		r.update(dt)
		if r.alive(now) {
			liveRings = append(liveRings, *r)
		}
	}
	a.Rings = liveRings

	keep := a.Trail[:0]
	for _, p := range a.Trail {
		if now.Sub(p.Time) < 200*time.Millisecond {
			keep = append(keep, p)
		}
	}
	a.Trail = keep

	if a.Mode == ModeTorpedo && a.animating {
		a.addTrailPoint(now, a.CurrentX+a.CurrentW/2, a.CurrentY+a.CurrentH/2)
	}

	return a.animating || len(a.Particles) > 0 || len(a.Rings) > 0 || len(a.Trail) > 0
}

// IsVisible reports whether the cursor glyph should currently be drawn.
func (a *Animator) IsVisible() bool { return a.visible && a.blinkOn }

// IsAnimating reports whether smoothing or any particle/ring is still live.
// Unlike Update's return value, an aging trail alone does not count.
func (a *Animator) IsAnimating() bool {
	return a.animating || len(a.Particles) > 0 || len(a.Rings) > 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
