package strategy

import (
	"math"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/tanema/gween"
	dmath "github.com/yohamta/donburi/features/math"
)

var right = dmath.Vec2{X: 1}

// heading is the state every movement shares: a unit direction and a speed.
type heading struct {
	body  Body
	dir   dmath.Vec2
	speed float64
}

func (h *heading) init(body Body, speed float64, dir dmath.Vec2) {
	h.body = body
	h.speed = speed
	h.dir = gamemath.Normalize(dir)
	if gamemath.IsZero(h.dir) {
		h.dir = right
	}
}

func (h *heading) SetDirection(dir dmath.Vec2) {
	if n := gamemath.Normalize(dir); !gamemath.IsZero(n) {
		h.dir = n
	}
}

func (h *heading) ScaleSpeed(m float64) { h.speed *= m }
func (h *heading) Direction() dmath.Vec2 { return h.dir }
func (h *heading) Speed() float64 { return h.speed }

func (h *heading) push(v dmath.Vec2) {
	if h.body != nil {
		h.body.SetVelocity(v)
	}
}

// Straight moves along a fixed heading. Speed ramps from InitialSpeed to
// MaxSpeed over AccelerationTime following the configured easing curve.
type Straight struct {
	heading
	ramp  *gween.Tween
	scale float64
	done  bool
}

func (s *Straight) Initialize(body Body, c *cfg.ProjectileConfig, dir dmath.Vec2) {
	s.init(body, c.InitialSpeed, dir)
	s.scale = 1
	s.ramp = nil
	s.done = true
	if c.AccelerationTime > 0 && c.MaxSpeed != c.InitialSpeed {
		s.ramp = gween.New(float32(c.InitialSpeed), float32(c.MaxSpeed), float32(c.AccelerationTime), EaseByName(c.Easing))
		s.done = false
	}
	s.push(gamemath.Scale(s.dir, s.speed))
}

func (s *Straight) UpdateMovement(dt, elapsed float64) {
	if s.ramp == nil || s.done {
		return
	}
	v, finished := s.ramp.Set(float32(elapsed))
	s.speed = float64(v) * s.scale
	s.done = finished
	s.push(gamemath.Scale(s.dir, s.speed))
}

// ScaleSpeed also scales the rest of the ramp.
func (s *Straight) ScaleSpeed(m float64) {
	s.scale *= m
	s.speed *= m
}

func (s *Straight) RequiresPerTickUpdate() bool {
	return !s.done
}

// Homing steers toward the nearest target in range, re-acquiring one when
// the current target dies or leaves range.
type Homing struct {
	heading
	strength float64
	rng      float64
	target   Target
}

func (h *Homing) Initialize(body Body, c *cfg.ProjectileConfig, dir dmath.Vec2) {
	h.init(body, c.InitialSpeed, dir)
	h.strength = c.HomingStrength
	h.rng = c.HomingRange
	h.target = nil
	h.push(gamemath.Scale(h.dir, h.speed))
}

func (h *Homing) UpdateMovement(dt, elapsed float64) {
	if h.body == nil {
		return
	}
	pos := h.body.Position()

	if h.target == nil || !h.target.Alive() || gamemath.Distance(pos, h.target.Position()) > h.rng {
		h.target = nil
		if t, ok := h.body.NearestTarget(h.rng); ok {
			h.target = t
		}
	}

	if h.target != nil {
		desired := gamemath.Normalize(gamemath.Sub(h.target.Position(), pos))
		if !gamemath.IsZero(desired) {
			blended := gamemath.Normalize(gamemath.Lerp(h.dir, desired, h.strength*dt))
			if !gamemath.IsZero(blended) {
				h.dir = blended
			}
		}
	}

	h.push(gamemath.Scale(h.dir, h.speed))
}

// Target returns the target being chased, if any.
func (h *Homing) Target() Target {
	return h.target
}

func (h *Homing) RequiresPerTickUpdate() bool { return true }

// Sine weaves across the base heading with the configured amplitude and
// frequency.
type Sine struct {
	heading
	amplitude float64
	frequency float64
}

func (s *Sine) Initialize(body Body, c *cfg.ProjectileConfig, dir dmath.Vec2) {
	s.init(body, c.InitialSpeed, dir)
	s.amplitude = c.SineAmplitude
	s.frequency = c.SineFrequency
	s.UpdateMovement(0, 0)
}

// UpdateMovement sets the velocity to the derivative of
// base*speed*t + perp*amplitude*sin(2*pi*f*t).
func (s *Sine) UpdateMovement(dt, elapsed float64) {
	w := 2 * math.Pi * s.frequency
	lateral := s.amplitude * w * math.Cos(w*elapsed)
	v := gamemath.Add(gamemath.Scale(s.dir, s.speed), gamemath.Scale(gamemath.Perpendicular(s.dir), lateral))
	s.push(v)
}

func (s *Sine) RequiresPerTickUpdate() bool { return true }

// Spiral orbits a center that travels along the base heading.
type Spiral struct {
	heading
	radius float64
	revs   float64
}

func (s *Spiral) Initialize(body Body, c *cfg.ProjectileConfig, dir dmath.Vec2) {
	s.init(body, c.InitialSpeed, dir)
	s.radius = c.SpiralRadius
	s.revs = c.SpiralSpeed
	s.UpdateMovement(0, 0)
}

func (s *Spiral) UpdateMovement(dt, elapsed float64) {
	w := 2 * math.Pi * s.revs
	theta := w * elapsed
	orbit := dmath.Vec2{X: -math.Sin(theta), Y: math.Cos(theta)}
	v := gamemath.Add(gamemath.Scale(s.dir, s.speed), gamemath.Scale(orbit, s.radius*w))
	s.push(v)
}

func (s *Spiral) RequiresPerTickUpdate() bool { return true }

// Curve follows a parabolic arc of CurveHeight above the base heading,
// landing back on it after CurveDuration.
type Curve struct {
	heading
	height   float64
	duration float64
}

func (c *Curve) Initialize(body Body, pc *cfg.ProjectileConfig, dir dmath.Vec2) {
	c.init(body, pc.InitialSpeed, dir)
	c.height = pc.CurveHeight
	c.duration = pc.CurveDuration
	c.UpdateMovement(0, 0)
}

// UpdateMovement uses the derivative of 4h*(t/T)*(1-t/T) for the lateral
// component. Past T the arc is done and only the base heading remains.
func (c *Curve) UpdateMovement(dt, elapsed float64) {
	v := gamemath.Scale(c.dir, c.speed)
	if c.duration > 0 && elapsed < c.duration {
		lateral := 4 * c.height / c.duration * (1 - 2*elapsed/c.duration)
		v = gamemath.Add(v, gamemath.Scale(gamemath.Perpendicular(c.dir), lateral))
	}
	c.push(v)
}

func (c *Curve) RequiresPerTickUpdate() bool { return true }

// Gravity launches along the heading and accelerates downward.
type Gravity struct {
	body    Body
	vel     dmath.Vec2
	gravity float64
}

func (g *Gravity) Initialize(body Body, c *cfg.ProjectileConfig, dir dmath.Vec2) {
	g.body = body
	g.gravity = c.Gravity
	d := gamemath.Normalize(dir)
	if gamemath.IsZero(d) {
		d = right
	}
	g.vel = gamemath.Scale(d, c.InitialSpeed)
	g.push()
}

func (g *Gravity) UpdateMovement(dt, elapsed float64) {
	g.vel.Y += g.gravity * dt
	g.push()
}

func (g *Gravity) SetDirection(dir dmath.Vec2) {
	if n := gamemath.Normalize(dir); !gamemath.IsZero(n) {
		g.vel = gamemath.Scale(n, gamemath.Length(g.vel))
	}
}

func (g *Gravity) ScaleSpeed(m float64) {
	g.vel = gamemath.Scale(g.vel, m)
}

func (g *Gravity) Direction() dmath.Vec2 {
	return gamemath.Normalize(g.vel)
}

func (g *Gravity) Speed() float64 {
	return gamemath.Length(g.vel)
}

func (g *Gravity) RequiresPerTickUpdate() bool { return true }

func (g *Gravity) push() {
	if g.body != nil {
		g.body.SetVelocity(g.vel)
	}
}
