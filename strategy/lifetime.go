package strategy

import cfg "github.com/automoto/doomerang-combat/config"

type expiry struct {
	onExpire func()
	expired  bool
}

func (e *expiry) init(onExpire func()) {
	e.onExpire = onExpire
	e.expired = false
}

func (e *expiry) expire() {
	if e.expired {
		return
	}
	e.expired = true
	if e.onExpire != nil {
		e.onExpire()
	}
}

func (e *expiry) ShouldDestroy() bool { return e.expired }

// TimeLifetime expires once MaxLifetime seconds have elapsed.
type TimeLifetime struct {
	expiry
	max     float64
	elapsed float64
}

func (l *TimeLifetime) Initialize(c *cfg.ProjectileConfig, onExpire func()) {
	l.init(onExpire)
	l.max = c.MaxLifetime
	l.elapsed = 0
}

func (l *TimeLifetime) UpdateLifetime(dt, traveled float64, hits int) {
	l.elapsed += dt
	if l.elapsed >= l.max {
		l.expire()
	}
}

// DistanceLifetime expires once the projectile has traveled MaxDistance.
type DistanceLifetime struct {
	expiry
	max float64
}

func (l *DistanceLifetime) Initialize(c *cfg.ProjectileConfig, onExpire func()) {
	l.init(onExpire)
	l.max = c.MaxDistance
}

func (l *DistanceLifetime) UpdateLifetime(dt, traveled float64, hits int) {
	if traveled >= l.max {
		l.expire()
	}
}

// HitCountLifetime expires after MaxHits entity hits.
type HitCountLifetime struct {
	expiry
	max int
}

func (l *HitCountLifetime) Initialize(c *cfg.ProjectileConfig, onExpire func()) {
	l.init(onExpire)
	l.max = c.MaxHits
}

func (l *HitCountLifetime) UpdateLifetime(dt, traveled float64, hits int) {
	if hits >= l.max {
		l.expire()
	}
}

// InfiniteLifetime never expires. Only a collision action ends it.
type InfiniteLifetime struct {
	expiry
}

func (l *InfiniteLifetime) Initialize(c *cfg.ProjectileConfig, onExpire func()) {
	l.init(onExpire)
}

func (l *InfiniteLifetime) UpdateLifetime(dt, traveled float64, hits int) {}
