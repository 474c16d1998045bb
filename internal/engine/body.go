package engine

// Body is a simulated point mass. Pos and Vel are mutated in place by the
// integrator; Mass and Size are fixed at spawn time and strictly positive.
type Body struct {
	Pos  Vec3
	Vel  Vec3
	Mass float64
	Size float64
}

// Store holds the mutable body population of a single run. It has exactly one
// writer (the current tick) and grows only between integration steps, so no
// locking is needed. It never shrinks during a run.
type Store struct {
	bodies []Body
}

func NewStore(capacity int) *Store {
	return &Store{bodies: make([]Body, 0, capacity)}
}

func (s *Store) Len() int { return len(s.bodies) }

// Bodies returns the live backing slice. Callers outside the tick must treat
// it as read-only and must not retain it past the current frame: the next
// tick grows and mutates it in place.
func (s *Store) Bodies() []Body { return s.bodies }

func (s *Store) Append(b Body) { s.bodies = append(s.bodies, b) }

// Reset empties the store while keeping its allocation.
func (s *Store) Reset() { s.bodies = s.bodies[:0] }
