// Package transition implements the buffer-switch transition animator: at
// most one active effect (crossfade, slide, scale-fade, blur, page-curl)
// animating between a captured snapshot of the old buffer and the new one.
package transition

import (
	"math"
	"strings"

	"neomacs.dev/display/f32"
)

// Effect selects which visual treatment a buffer switch uses.
type Effect int

const (
	EffectNone Effect = iota
	EffectCrossfade
	EffectSlideLeft
	EffectSlideRight
	EffectSlideUp
	EffectSlideDown
	EffectScaleFade
	EffectPush
	EffectBlur
	EffectPageCurl
)

// ParseEffect maps a case-insensitive name (including aliases) to an Effect,
// defaulting to EffectCrossfade for anything unrecognized.
func ParseEffect(s string) Effect {
	switch strings.ToLower(s) {
	case "none":
		return EffectNone
	case "crossfade", "fade":
		return EffectCrossfade
	case "slide-left", "slide":
		return EffectSlideLeft
	case "slide-right":
		return EffectSlideRight
	case "slide-up":
		return EffectSlideUp
	case "slide-down":
		return EffectSlideDown
	case "scale", "scale-fade":
		return EffectScaleFade
	case "push", "stack":
		return EffectPush
	case "blur":
		return EffectBlur
	case "page", "page-curl", "book":
		return EffectPageCurl
	default:
		return EffectCrossfade
	}
}

// Direction is the axis a directional effect (slide, push) moves along.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

// Easing is a progress-remapping curve, applied to raw elapsed/duration
// before any effect formula consumes it.
type Easing int

const (
	EasingLinear Easing = iota
	EasingEaseOut
	EasingEaseIn
	EasingEaseInOut
	EasingEaseOutBack
)

// Apply clamps t to [0, 1] and remaps it through the curve. EaseOutBack can
// return values slightly above 1 (overshoot) by design.
func (e Easing) Apply(t float32) float32 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch e {
	case EasingLinear:
		return t
	case EasingEaseIn:
		return t * t * t
	case EasingEaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EasingEaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	case EasingEaseOutBack:
		const c1 = 1.70158
		const c3 = c1 + 1.0
		u := t - 1
		return 1 + c3*u*u*u + c1*u*u
	default:
		return t
	}
}

// Transition is one in-flight effect. Elapsed time is tracked in seconds so
// callers drive it with their own clock via Update, never time.Now.
type Transition struct {
	Effect    Effect
	Direction Direction
	Easing    Easing

	DurationSecs float32
	elapsedSecs  float32
	progress     float32
	completed    bool

	OldWidth, OldHeight float32
}

// NewTransition starts a transition at progress 0 with EaseOut, matching
// the animator's default easing for every effect.
func NewTransition(effect Effect, direction Direction, durationSecs float32) *Transition {
	return &Transition{
		Effect:       effect,
		Direction:    direction,
		Easing:       EasingEaseOut,
		DurationSecs: durationSecs,
	}
}

// Update advances elapsed time by dt seconds and applies easing. It returns
// whether the transition is still active; once raw progress reaches 1 it
// completes and locks progress at 1.
func (t *Transition) Update(dt float32) bool {
	if t.completed {
		return false
	}
	t.elapsedSecs += dt
	raw := t.elapsedSecs / t.DurationSecs
	if raw >= 1 {
		t.progress = 1
		t.completed = true
		return false
	}
	t.progress = t.Easing.Apply(raw)
	return true
}

// EasedProgress returns the progress value set by the most recent Update.
func (t *Transition) EasedProgress() float32 { return t.progress }

// CrossfadeOldOpacity is the old content's opacity during a crossfade.
func (t *Transition) CrossfadeOldOpacity() float32 { return 1 - t.progress }

// CrossfadeNewOpacity is the new content's opacity during a crossfade.
func (t *Transition) CrossfadeNewOpacity() float32 { return t.progress }

// SlideOldOffset is the old content's translation vector for a slide/push
// effect.
func (t *Transition) SlideOldOffset() f32.Point {
	offset := t.progress
	switch t.Direction {
	case DirectionLeft:
		return f32.Point{X: -offset * t.OldWidth}
	case DirectionRight:
		return f32.Point{X: offset * t.OldWidth}
	case DirectionUp:
		return f32.Point{Y: -offset * t.OldHeight}
	default:
		return f32.Point{Y: offset * t.OldHeight}
	}
}

// SlideNewOffset is the new content's translation vector for a slide/push
// effect.
func (t *Transition) SlideNewOffset() f32.Point {
	offset := 1 - t.progress
	switch t.Direction {
	case DirectionLeft:
		return f32.Point{X: offset * t.OldWidth}
	case DirectionRight:
		return f32.Point{X: -offset * t.OldWidth}
	case DirectionUp:
		return f32.Point{Y: offset * t.OldHeight}
	default:
		return f32.Point{Y: -offset * t.OldHeight}
	}
}

// ScaleOld is the old content's scale for a scale-fade effect, 1.0 shrinking
// to 0.9.
func (t *Transition) ScaleOld() float32 { return 1 - t.progress*0.1 }

// ScaleNew is the new content's scale for a scale-fade effect, 0.9 growing
// to 1.0.
func (t *Transition) ScaleNew() float32 { return 0.9 + t.progress*0.1 }

// BlurOldRadius is the old content's blur radius in pixels, 0 growing to 15.
func (t *Transition) BlurOldRadius() float32 { return t.progress * 15.0 }

// BlurNewRadius is the new content's blur radius in pixels, 15 shrinking to 0.
func (t *Transition) BlurNewRadius() float32 { return (1 - t.progress) * 15.0 }

// PageCurlParams returns (curlProgress, curlAngle, shadowOpacity) for the
// page-curl effect: the angle sweeps 0..π as the page turns, and the shadow
// peaks at the midpoint of the turn.
func (t *Transition) PageCurlParams() (float32, float32, float32) {
	angle := t.progress * math.Pi
	shadow := float32(math.Sin(float64(angle))) * 0.5
	return t.progress, float32(angle), shadow
}

// PageCurlShaderParams is the GPU-facing parameter block for a page-curl
// render pass, derived independently of a Transition's progress so the
// renderer can also drive it directly (e.g. for a preview).
type PageCurlShaderParams struct {
	Progress       float32
	Radius         float32
	Corner         uint32
	Width, Height  float32
	Shadow         float32
	BacksideDarken float32
}

// DefaultPageCurlShaderParams matches the original design's resting values:
// a flat page, 50px curl radius, bottom-right corner lifted.
func DefaultPageCurlShaderParams() PageCurlShaderParams {
	return PageCurlShaderParams{
		Radius: 50.0, Width: 800.0, Height: 600.0,
		Shadow: 0.3, BacksideDarken: 0.2,
	}
}

// PageCurlShaderParamsFromProgress derives the shader parameters for a given
// progress and content size: the curl radius grows as the page lifts, and
// shadow again peaks mid-turn.
func PageCurlShaderParamsFromProgress(progress, width, height float32) PageCurlShaderParams {
	shadow := float32(math.Sin(float64(progress)*math.Pi)) * 0.4
	return PageCurlShaderParams{
		Progress: progress,
		Radius:   30.0 + progress*40.0,
		Width:    width, Height: height,
		Shadow:         shadow,
		BacksideDarken: 0.15,
	}
}

// Animator owns at most one active Transition plus the old-buffer snapshot
// state the renderer populates via RequestSnapshot/SnapshotCaptured.
type Animator struct {
	DefaultEffect       Effect
	DefaultDurationSecs float32
	Active              *Transition
	HasSnapshot         bool
	SnapshotID          uint32
	AutoDetect          bool

	lastContentHash uint64
}

// NewAnimator returns an Animator with crossfade/200ms defaults and
// auto-detection enabled, matching the rest of the host-visible defaults.
func NewAnimator() *Animator {
	return &Animator{
		DefaultEffect:       EffectCrossfade,
		DefaultDurationSecs: 0.2,
		AutoDetect:          true,
	}
}

// StartTransition starts one using the animator's default effect and a
// leftward direction.
func (a *Animator) StartTransition() {
	a.StartTransitionWith(a.DefaultEffect, DirectionLeft)
}

// StartTransitionWith starts a transition with an explicit effect and
// direction. Effect EffectNone clears any in-flight transition instead of
// starting one.
func (a *Animator) StartTransitionWith(effect Effect, direction Direction) {
	if effect == EffectNone {
		a.Active = nil
		return
	}
	a.Active = NewTransition(effect, direction, a.DefaultDurationSecs)
}

// RequestSnapshot clears HasSnapshot; the renderer sets it back via
// SnapshotCaptured once it has actually captured the old framebuffer.
func (a *Animator) RequestSnapshot() { a.HasSnapshot = false }

// SnapshotCaptured records the captured snapshot's dimensions and marks it
// ready. Safe to call with no active transition (the dimensions are simply
// dropped).
func (a *Animator) SnapshotCaptured(width, height float32) {
	a.HasSnapshot = true
	if a.Active != nil {
		a.Active.OldWidth = width
		a.Active.OldHeight = height
	}
}

// Update advances the active transition by dt seconds. It returns whether a
// transition is still active; on completion the transition and its
// snapshot are dropped.
func (a *Animator) Update(dt float32) bool {
	if a.Active == nil {
		return false
	}
	stillActive := a.Active.Update(dt)
	if !stillActive {
		a.Active = nil
		a.HasSnapshot = false
	}
	return stillActive
}

// IsActive reports whether a transition is currently running.
func (a *Animator) IsActive() bool { return a.Active != nil }

// UpdateContentHash compares hash against the last recorded one and reports
// whether the content changed. The very first call never reports a change
// (there is nothing to compare against yet).
func (a *Animator) UpdateContentHash(hash uint64) bool {
	changed := hash != a.lastContentHash && a.lastContentHash != 0
	a.lastContentHash = hash
	return changed
}
