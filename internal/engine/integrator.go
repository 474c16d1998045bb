package engine

import "math"

// Integrator advances the whole store by one fixed time step. It is the hot
// loop of the benchmark: pairwise softened gravity plus a deliberately
// expensive trigonometric stress term per interaction.
type Integrator struct {
	p Params
}

func NewIntegrator(p Params) *Integrator {
	return &Integrator{p: p}
}

// Stride returns the inner-loop step for population n. Below the threshold
// every pair is visited; above it the loop is sparsified so the pair count
// stays roughly n*divisor/2 instead of n²/2.
func (in *Integrator) Stride(n int) int {
	if n <= in.p.StrideThreshold {
		return 1
	}
	return (n + in.p.StrideDivisor - 1) / in.p.StrideDivisor
}

// Step updates velocity and position of every body exactly once and returns
// the number of pairwise force evaluations performed. It allocates nothing
// and does no I/O.
func (in *Integrator) Step(store *Store, dt float64) int {
	bodies := store.Bodies()
	n := len(bodies)
	stride := in.Stride(n)
	evals := 0

	g := in.p.G
	softening := in.p.SofteningSq
	centerPull := in.p.CenterPull
	stressCoeff := in.p.StressCoeff
	bound := in.p.BoundaryDistance
	restitution := in.p.BoundaryRestitution

	for i := 0; i < n; i++ {
		bi := &bodies[i]

		// Centering pull keeps the swarm near the origin; without it the
		// population drifts out of any finite viewport.
		bi.Vel.X -= bi.Pos.X * centerPull
		bi.Vel.Y -= bi.Pos.Y * centerPull
		bi.Vel.Z -= bi.Pos.Z * centerPull

		for j := i + 1; j < n; j += stride {
			bj := &bodies[j]

			dx := bj.Pos.X - bi.Pos.X
			dy := bj.Pos.Y - bi.Pos.Y
			dz := bj.Pos.Z - bi.Pos.Z

			// Softening keeps distSq >= SofteningSq, so the division below
			// can never blow up at near-zero separation.
			distSq := dx*dx + dy*dy + dz*dz + softening
			dist := math.Sqrt(distSq)
			force := g * bi.Mass * bj.Mass / distSq

			// Extra transcendental load per interaction. Not physics: it is
			// the stressor this benchmark exists to apply, and it breaks the
			// perfect symmetry of the force field.
			stress := (math.Sin(dx*0.01)*math.Cos(dy*0.01) + math.Tan(dz*0.001)) * stressCoeff

			fx := force*dx/dist + stress
			fy := force*dy/dist + stress
			fz := force*dz/dist + stress

			bi.Vel.X += fx / bi.Mass
			bi.Vel.Y += fy / bi.Mass
			bi.Vel.Z += fz / bi.Mass

			bj.Vel.X -= fx / bj.Mass
			bj.Vel.Y -= fy / bj.Mass
			bj.Vel.Z -= fz / bj.Mass

			evals++
		}

		bi.Pos.X += bi.Vel.X * dt
		bi.Pos.Y += bi.Vel.Y * dt
		bi.Pos.Z += bi.Vel.Z * dt

		// Soft boundary: reflect velocity, leave position alone. A fast body
		// may sit outside the bound for a step before coming back.
		if bi.Pos.X > bound || bi.Pos.X < -bound {
			bi.Vel.X *= restitution
		}
		if bi.Pos.Y > bound || bi.Pos.Y < -bound {
			bi.Vel.Y *= restitution
		}
		if bi.Pos.Z > bound || bi.Pos.Z < -bound {
			bi.Vel.Z *= restitution
		}
	}

	return evals
}
