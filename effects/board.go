// Package effects keeps short-lived presentation state: sounds, the speech
// bubbles tied to bleats, and particle bursts.
package effects

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// SoundID correlates a sound with the visuals that live as long as it does.
type SoundID uint32

// SoundKind identifies which clip a sound plays.
type SoundKind uint8

const (
	SoundBleat SoundKind = iota
	SoundEat
)

// Sound is a playing sound effect.
type Sound struct {
	ID        SoundID
	Kind      SoundKind
	Pos       vmath.Vec2
	Human     bool
	Remaining float32
}

// Bubble is a speech bubble that follows a bleating sheep.
type Bubble struct {
	Sound SoundID
	Owner ecs.Entity
	Pos   vmath.Vec2
	Human bool
}

// Particle is a single burst particle.
type Particle struct {
	Pos, Vel      vmath.Vec2
	Life, MaxLife float32
	Size          float32
}

// Board collects effect requests from the simulation and ages them.
// It satisfies systems.Effects.
type Board struct {
	world     *ecs.World
	positions *ecs.Map[components.Position]
	rng       *rand.Rand

	bleatDuration  float32
	eatDuration    float32
	burstParticles int
	burstSpeed     float32
	burstLifetime  float32
	maxParticles   int

	nextID    SoundID
	sounds    []Sound
	bubbles   map[SoundID]*Bubble
	particles []Particle

	// Sounds started since the last Drain.
	started []Sound
}

// NewBoard creates an empty effect board bound to the world's positions.
func NewBoard(w *ecs.World, cfg *config.Config, rng *rand.Rand) *Board {
	return &Board{
		world:          w,
		positions:      ecs.NewMap[components.Position](w),
		rng:            rng,
		bleatDuration:  float32(cfg.Effects.BleatDuration),
		eatDuration:    float32(cfg.Effects.EatDuration),
		burstParticles: cfg.Effects.BurstParticles,
		burstSpeed:     float32(cfg.Effects.BurstSpeed),
		burstLifetime:  float32(cfg.Effects.BurstLifetime),
		maxParticles:   cfg.Effects.MaxParticles,
		bubbles:        make(map[SoundID]*Bubble),
		particles:      make([]Particle, 0, cfg.Effects.MaxParticles),
	}
}

func (b *Board) play(kind SoundKind, pos vmath.Vec2, human bool, d float32) SoundID {
	b.nextID++
	s := Sound{ID: b.nextID, Kind: kind, Pos: pos, Human: human, Remaining: d}
	b.sounds = append(b.sounds, s)
	b.started = append(b.started, s)
	return s.ID
}

// Bleat plays a bleat and shows a bubble over the sheep until the sound ends.
func (b *Board) Bleat(e ecs.Entity, pos vmath.Vec2, human bool) {
	id := b.play(SoundBleat, pos, human, b.bleatDuration)
	b.bubbles[id] = &Bubble{Sound: id, Owner: e, Pos: pos, Human: human}
}

// Eat plays the eating sound.
func (b *Board) Eat(pos vmath.Vec2) {
	b.play(SoundEat, pos, false, b.eatDuration)
}

// Burst emits a radial spray of particles.
func (b *Board) Burst(pos vmath.Vec2) {
	for i := 0; i < b.burstParticles; i++ {
		if len(b.particles) >= b.maxParticles {
			return
		}
		angle := b.rng.Float64() * 2 * math.Pi
		speed := b.burstSpeed * (0.5 + 0.5*b.rng.Float32())
		life := b.burstLifetime * (0.5 + 0.5*b.rng.Float32())
		b.particles = append(b.particles, Particle{
			Pos:     pos,
			Vel:     vmath.FromAngle(angle).Scale(speed),
			Life:    life,
			MaxLife: life,
			Size:    1.5 + b.rng.Float32()*1.5,
		})
	}
}

// Update ages sounds and particles, moves bubbles with their sheep and
// despawns bubbles whose sound ended or whose sheep is gone.
func (b *Board) Update(dt float32) {
	alive := 0
	for i := range b.sounds {
		s := &b.sounds[i]
		s.Remaining -= dt
		if s.Remaining <= 0 {
			delete(b.bubbles, s.ID)
			continue
		}
		b.sounds[alive] = *s
		alive++
	}
	b.sounds = b.sounds[:alive]

	for id, bubble := range b.bubbles {
		if !b.world.Alive(bubble.Owner) {
			delete(b.bubbles, id)
			continue
		}
		bubble.Pos = b.positions.Get(bubble.Owner).Vec2
	}

	drag := float32(math.Pow(0.05, float64(dt)))
	alive = 0
	for i := range b.particles {
		p := &b.particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Scale(drag)
		b.particles[alive] = *p
		alive++
	}
	b.particles = b.particles[:alive]
}

// Drain returns the sounds started since the previous call.
func (b *Board) Drain() []Sound {
	out := b.started
	b.started = nil
	return out
}

// Sounds returns the currently playing sounds.
func (b *Board) Sounds() []Sound { return b.sounds }

// Particles returns the live particles.
func (b *Board) Particles() []Particle { return b.particles }

// Bubbles calls fn for every visible bubble.
func (b *Board) Bubbles(fn func(Bubble)) {
	for _, bubble := range b.bubbles {
		fn(*bubble)
	}
}

// BubbleCount returns the number of visible bubbles.
func (b *Board) BubbleCount() int { return len(b.bubbles) }

// Clear drops every effect. Sound IDs keep increasing across clears.
func (b *Board) Clear() {
	b.sounds = b.sounds[:0]
	b.particles = b.particles[:0]
	b.started = nil
	clear(b.bubbles)
}
