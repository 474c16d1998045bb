package engine

import (
	"math"
	"math/rand"
	"testing"
)

func TestStride(t *testing.T) {
	integ := NewIntegrator(DefaultParams())

	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{100, 1},
		{8000, 1},
		{8001, 3}, // ceil(8001/4000)
		{12000, 3},
		{16000, 4},
		{16001, 5},
	}

	for _, tt := range tests {
		if got := integ.Stride(tt.n); got != tt.want {
			t.Errorf("Stride(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// countPairs replays the inner loop bounds directly: for each i, the number
// of j in (i+1 .. n-1) stepping by stride.
func countPairs(n, stride int) int {
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j += stride {
			count++
		}
	}
	return count
}

func TestStepEvaluationCount(t *testing.T) {
	// Small thresholds so the strided regime is reachable with a population
	// that integrates in microseconds.
	p := DefaultParams()
	p.StrideThreshold = 20
	p.StrideDivisor = 10

	tests := []struct {
		name string
		n    int
	}{
		{"dense", 15},
		{"at threshold", 20},
		{"just strided", 21},
		{"strided", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ := NewIntegrator(p)
			store := NewStore(tt.n)
			NewSpawner(p, rand.New(rand.NewSource(1))).Spawn(store, tt.n)

			got := integ.Step(store, p.Dt)
			want := countPairs(tt.n, integ.Stride(tt.n))
			if got != want {
				t.Errorf("n=%d stride=%d: got %d evaluations, want %d",
					tt.n, integ.Stride(tt.n), got, want)
			}
		})
	}
}

func TestPairwiseAntisymmetry(t *testing.T) {
	p := DefaultParams()
	p.CenterPull = 0 // isolate the pairwise interaction

	store := NewStore(2)
	store.Append(Body{Pos: Vec3{X: 10, Y: 20, Z: 5}, Mass: 2, Size: 3})
	store.Append(Body{Pos: Vec3{X: -30, Y: 4, Z: -8}, Mass: 3, Size: 3})

	integ := NewIntegrator(p)
	integ.Step(store, p.Dt)

	bodies := store.Bodies()
	a, b := bodies[0], bodies[1]

	// Momentum contributed by the single pairwise interaction sums to zero.
	px := a.Mass*a.Vel.X + b.Mass*b.Vel.X
	py := a.Mass*a.Vel.Y + b.Mass*b.Vel.Y
	pz := a.Mass*a.Vel.Z + b.Mass*b.Vel.Z

	const tol = 1e-12
	if math.Abs(px) > tol || math.Abs(py) > tol || math.Abs(pz) > tol {
		t.Errorf("net momentum (%g, %g, %g), want zero", px, py, pz)
	}

	// The velocity deltas are exact negatives scaled by the mass ratio.
	ratio := b.Mass / a.Mass
	if math.Abs(a.Vel.X+b.Vel.X*ratio) > tol {
		t.Errorf("delta-v not antisymmetric: a=%g b=%g", a.Vel.X, b.Vel.X)
	}
}

func TestCenteringPull(t *testing.T) {
	p := DefaultParams()
	store := NewStore(1)
	store.Append(Body{Pos: Vec3{X: 1000}, Mass: 1, Size: 1})

	NewIntegrator(p).Step(store, p.Dt)

	if vx := store.Bodies()[0].Vel.X; vx >= 0 {
		t.Errorf("expected pull toward origin, got vx=%g", vx)
	}
}

func TestSoftBoundaryReflection(t *testing.T) {
	p := DefaultParams()
	store := NewStore(1)
	store.Append(Body{Pos: Vec3{X: p.BoundaryDistance + 10}, Vel: Vec3{X: 100}, Mass: 1, Size: 1})

	NewIntegrator(p).Step(store, p.Dt)
	b := store.Bodies()[0]

	if b.Vel.X >= 0 {
		t.Errorf("expected reflected velocity, got %g", b.Vel.X)
	}
	// Position is not clamped: the body may sit outside the bound for a step.
	if b.Pos.X <= p.BoundaryDistance {
		t.Errorf("expected position still outside bound, got %g", b.Pos.X)
	}
}

func TestStepStaysFinite(t *testing.T) {
	p := DefaultParams()
	store := NewStore(200)
	NewSpawner(p, rand.New(rand.NewSource(7))).Spawn(store, 200)

	integ := NewIntegrator(p)
	for i := 0; i < 500; i++ {
		integ.Step(store, p.Dt)
	}

	for i, b := range store.Bodies() {
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
			t.Fatalf("body %d not finite: pos=%+v vel=%+v", i, b.Pos, b.Vel)
		}
	}
}

// Coincident bodies exercise the softening term: distSq is floored at
// SofteningSq, so the force stays bounded.
func TestSofteningPreventsSingularity(t *testing.T) {
	p := DefaultParams()
	p.CenterPull = 0

	store := NewStore(2)
	store.Append(Body{Pos: Vec3{}, Mass: 4, Size: 2})
	store.Append(Body{Pos: Vec3{}, Mass: 4, Size: 2})

	NewIntegrator(p).Step(store, p.Dt)

	for i, b := range store.Bodies() {
		if !b.Vel.IsFinite() {
			t.Fatalf("body %d velocity not finite after coincident step: %+v", i, b.Vel)
		}
	}
}
