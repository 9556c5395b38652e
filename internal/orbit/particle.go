package orbit

import (
	"image/color"
	"math"

	"github.com/iburimskiy/orbital/internal/config"
)

// Particle is one body on a fixed circular orbit.
// Position at any time is U*cos(Angle) + V*sin(Angle).
type Particle struct {
	Angle float64
	Speed float64 // radians per tick, sign is orbit direction

	// Orbit basis, pre-scaled by the orbital radius
	U, V Vec3

	Size       float64
	Color      color.NRGBA
	ImageIndex int

	// Written every frame by Advance, read by hit testing
	ScreenX float64
	ScreenY float64
	Scale   float64
}

// Radius returns the orbital radius.
func (p *Particle) Radius() float64 {
	return p.U.Len()
}

// Position returns the untransformed position on the orbit.
func (p *Particle) Position() Vec3 {
	c, s := math.Cos(p.Angle), math.Sin(p.Angle)
	return p.U.Scale(c).Add(p.V.Scale(s))
}

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewParticles builds a complete particle collection for cfg.
// The first 35% are dense core particles, the rest fill the outer shell.
func NewParticles(cfg config.Config, rnd Source) []Particle {
	n := cfg.ParticleCount
	if n < 0 {
		n = 0
	}
	imageCount := len(cfg.ParticleImages)
	coreCount := int(math.Floor(float64(n) * config.CoreFraction))

	ps := make([]Particle, n)
	for i := range ps {
		isCore := i < coreCount

		var radius, speed, size, progress float64
		if isCore {
			radius = math.Cbrt(rnd.Float64()) * config.CoreRadius
			speed = cfg.BaseSpeed * 0.05 * randSign(rnd)
			size = rnd.Float64()*1.5 + 0.5
		} else {
			rRatio := math.Sqrt(rnd.Float64())
			radius = config.CoreRadius + rRatio*cfg.BaseRadius
			speed = cfg.BaseSpeed * 0.03 / (0.2 + rRatio) * randSign(rnd)
			size = rnd.Float64()*2 + 0.5
			progress = (radius - config.CoreRadius) / cfg.BaseRadius
		}

		// Uniform orbit normal on the unit sphere
		phi := math.Acos(2*rnd.Float64() - 1)
		theta := rnd.Float64() * 2 * math.Pi
		normal := Vec3{
			math.Sin(phi) * math.Cos(theta),
			math.Sin(phi) * math.Sin(theta),
			math.Cos(phi),
		}
		u, v := Basis(normal)

		p := Particle{
			Angle: rnd.Float64() * 2 * math.Pi,
			Speed: speed,
			U:     u.Scale(radius),
			V:     v.Scale(radius),
			Size:  size,
			Color: ThemeColor(cfg.ColorTheme, progress),
		}
		if imageCount > 0 {
			p.ImageIndex = int(rnd.Float64() * float64(imageCount))
		}
		ps[i] = p
	}
	return ps
}

func randSign(rnd Source) float64 {
	if rnd.Float64() > 0.5 {
		return 1
	}
	return -1
}
