package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// AnimationCurve selects how a displayed value moves to a new target
type AnimationCurve int

const (
	CurveNone AnimationCurve = iota
	CurveSpring
	CurveLinear
	CurveEaseOut
)

func (c AnimationCurve) String() string {
	switch c {
	case CurveSpring:
		return "spring"
	case CurveLinear:
		return "linear"
	case CurveEaseOut:
		return "ease-out"
	default:
		return "none"
	}
}

// AnimationSettings holds curve parameters, all times in seconds
type AnimationSettings struct {
	SpringResponse  float64 // period of the undamped spring
	SpringDamping   float64
	LinearDuration  float64
	EaseOutDuration float64
	FadeDuration    float64
}

// DefaultAnimationSettings returns the stock curve timing
func DefaultAnimationSettings() AnimationSettings {
	return AnimationSettings{
		SpringResponse:  0.55,
		SpringDamping:   0.825,
		LinearDuration:  1.0,
		EaseOutDuration: 0.35,
		FadeDuration:    0.5,
	}
}

// A spring is at rest once both distance and speed drop below this
const springRestEpsilon = 1e-3

func easeOutCubic(x float64) float64 {
	inv := 1 - x
	return 1 - inv*inv*inv
}

// Tween moves a single value from one target to the next
type Tween struct {
	from     float64
	to       float64
	elapsed  float64
	duration float64
	curve    AnimationCurve
	done     bool
	settings AnimationSettings

	// Spring curve state
	value      float64
	velocity   float64
	spring     harmonica.Spring
	springStep float64
}

func newTween(value float64, settings AnimationSettings) Tween {
	return Tween{from: value, to: value, value: value, done: true, settings: settings}
}

func (t *Tween) durationFor(curve AnimationCurve) float64 {
	switch curve {
	case CurveLinear:
		return t.settings.LinearDuration
	case CurveEaseOut:
		return t.settings.EaseOutDuration
	default:
		return 0
	}
}

// Value returns the displayed value at the current point of the animation
func (t *Tween) Value() float64 {
	if t.done {
		return t.to
	}
	switch t.curve {
	case CurveSpring:
		return t.value
	case CurveEaseOut:
		return t.from + (t.to-t.from)*easeOutCubic(t.elapsed/t.duration)
	default:
		return t.from + (t.to-t.from)*t.elapsed/t.duration
	}
}

// Target returns the value the tween is heading to
func (t *Tween) Target() float64 {
	return t.to
}

// Done reports whether the tween reached its target
func (t *Tween) Done() bool {
	return t.done
}

// Retarget starts a new animation from the currently displayed value.
// A spring already in flight keeps its velocity.
func (t *Tween) Retarget(to float64, curve AnimationCurve) {
	velocity := 0.0
	if curve == CurveSpring && t.curve == CurveSpring && !t.done {
		velocity = t.velocity
	}
	t.start(t.Value(), to, curve, t.durationFor(curve), velocity)
}

// Restart animates from an explicit start value
func (t *Tween) Restart(from, to float64, curve AnimationCurve, duration float64) {
	t.start(from, to, curve, duration, 0)
}

func (t *Tween) start(from, to float64, curve AnimationCurve, duration, velocity float64) {
	t.from = from
	t.to = to
	t.value = from
	t.velocity = velocity
	t.elapsed = 0
	t.curve = curve
	t.duration = duration

	switch curve {
	case CurveSpring:
		t.done = t.settings.SpringResponse <= 0 || (from == to && velocity == 0)
	case CurveLinear, CurveEaseOut:
		t.done = duration <= 0
	default:
		t.done = true
	}
}

// Step advances the animation by dt seconds
func (t *Tween) Step(dt float64) {
	if t.done || dt <= 0 {
		return
	}

	if t.curve != CurveSpring {
		t.elapsed += dt
		t.done = t.elapsed >= t.duration
		return
	}

	if dt != t.springStep {
		omega := 2 * math.Pi / t.settings.SpringResponse
		t.spring = harmonica.NewSpring(dt, omega, t.settings.SpringDamping)
		t.springStep = dt
	}
	t.value, t.velocity = t.spring.Update(t.value, t.velocity, t.to)
	if math.Abs(t.value-t.to) < springRestEpsilon && math.Abs(t.velocity) < springRestEpsilon {
		t.done = true
		t.velocity = 0
	}
}

// DisplayState is what the renderer draws, as opposed to the ViewState targets
type DisplayState struct {
	Scale          float64
	Offset         Offset
	Opacity        float64
	DrawerProgress float64 // 0 closed, 1 open
}

// Animator interpolates displayed values towards the controller state
type Animator struct {
	settings AnimationSettings
	scale    Tween
	offsetX  Tween
	offsetY  Tween
	opacity  Tween
	drawer   Tween
}

// NewAnimator starts the displayed values at state without animating
func NewAnimator(settings AnimationSettings, state ViewState) *Animator {
	opacity := 0.0
	if state.EntranceAnimated {
		opacity = 1
	}
	drawer := 0.0
	if state.DrawerOpen {
		drawer = 1
	}
	return &Animator{
		settings: settings,
		scale:    newTween(state.ZoomScale, settings),
		offsetX:  newTween(state.PanOffset.DX, settings),
		offsetY:  newTween(state.PanOffset.DY, settings),
		opacity:  newTween(opacity, settings),
		drawer:   newTween(drawer, settings),
	}
}

// Apply retargets the values touched by a controller transition
func (a *Animator) Apply(change StateChange) {
	prev, cur := change.Previous, change.Current

	if prev.ZoomScale != cur.ZoomScale {
		a.scale.Retarget(cur.ZoomScale, change.Curve)
	}
	if prev.PanOffset != cur.PanOffset {
		a.offsetX.Retarget(cur.PanOffset.DX, change.Curve)
		a.offsetY.Retarget(cur.PanOffset.DY, change.Curve)
	}
	if prev.DrawerOpen != cur.DrawerOpen {
		target := 0.0
		if cur.DrawerOpen {
			target = 1
		}
		a.drawer.Retarget(target, CurveEaseOut)
	}
	if cur.EntranceAnimated && (!prev.EntranceAnimated || prev.CurrentPageIndex != cur.CurrentPageIndex) {
		a.opacity.Restart(0, 1, CurveEaseOut, a.settings.FadeDuration)
	}
}

// Step advances every animation by dt seconds
func (a *Animator) Step(dt float64) {
	a.scale.Step(dt)
	a.offsetX.Step(dt)
	a.offsetY.Step(dt)
	a.opacity.Step(dt)
	a.drawer.Step(dt)
}

// Active reports whether any value is still moving
func (a *Animator) Active() bool {
	return !a.scale.Done() || !a.offsetX.Done() || !a.offsetY.Done() ||
		!a.opacity.Done() || !a.drawer.Done()
}

// Display returns the values to draw this frame
func (a *Animator) Display() DisplayState {
	return DisplayState{
		Scale:          a.scale.Value(),
		Offset:         Offset{DX: a.offsetX.Value(), DY: a.offsetY.Value()},
		Opacity:        clamp01(a.opacity.Value()),
		DrawerProgress: a.drawer.Value(),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
