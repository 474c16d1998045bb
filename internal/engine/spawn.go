package engine

import (
	"math"
	"math/rand"
)

// Spawner seeds new bodies. The random source is injected so tests can run
// deterministically; live runs use a time-seeded source.
type Spawner struct {
	p   Params
	rng *rand.Rand
}

func NewSpawner(p Params, rng *rand.Rand) *Spawner {
	return &Spawner{p: p, rng: rng}
}

// Spawn appends count new bodies to the store. Each body lands on a disk of
// radius <= SpawnRadius at a uniformly random angle, with a tangential
// velocity of constant magnitude, mass in [MassMin, MassMax) and size in
// [SizeMin, SizeMax).
func (sp *Spawner) Spawn(store *Store, count int) {
	for k := 0; k < count; k++ {
		angle := sp.rng.Float64() * 2 * math.Pi
		radius := sp.rng.Float64() * sp.p.SpawnRadius

		store.Append(Body{
			Pos: Vec3{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			},
			Vel: Vec3{
				X: -math.Sin(angle) * sp.p.SpawnSpeed,
				Y: math.Cos(angle) * sp.p.SpawnSpeed,
			},
			Mass: sp.p.MassMin + sp.rng.Float64()*(sp.p.MassMax-sp.p.MassMin),
			Size: sp.p.SizeMin + sp.rng.Float64()*(sp.p.SizeMax-sp.p.SizeMin),
		})
	}
}
