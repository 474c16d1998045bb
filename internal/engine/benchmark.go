package engine

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateFinished
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	ErrSurfaceNotReady = errors.New("render surface not ready")
	ErrAlreadyRunning  = errors.New("benchmark already running")
)

// Frame is the per-tick handoff to the render surface. Bodies is a borrow of
// the live store: valid only until Tick returns to the caller, never to be
// mutated or retained.
type Frame struct {
	Bodies []Body
	Width  int
	Height int
	// Stress is the normalized load fraction min(1, population/full scale),
	// for the surface's own heat mapping.
	Stress float64
}

// Surface is the external render collaborator. The engine calls Draw once per
// tick; it mandates nothing about presentation.
type Surface interface {
	Ready() bool
	Size() (width, height int)
	Draw(f Frame)
}

// Clock supplies wall time. Injectable so a run is fully deterministic under
// test.
type Clock func() time.Time

// Results are the frozen outputs of a finished run.
type Results struct {
	Score          int64    `json:"score"`
	PeakPopulation int      `json:"peak_population"`
	AverageFPS     float64  `json:"average_fps"`
	Interactions   int64    `json:"interactions"`
	History        []Sample `json:"history"`
}

// Benchmark owns one run: the body store, the integrator, the population
// ramp, telemetry, and the Idle/Running/Finished state machine. All methods
// must be called from a single goroutine; ticks never overlap.
type Benchmark struct {
	params  Params
	surface Surface
	clock   Clock
	spawner *Spawner
	integ   *Integrator
	store   *Store

	state     RunState
	startedAt time.Time
	endAt     time.Time

	lastSampleAt time.Time
	framesSince  int
	currentFPS   float64

	interactions  int64
	history       []Sample
	results       *Results
	frozenElapsed time.Duration

	observers []Observer
}

func New(params Params, surface Surface) *Benchmark {
	rng := rand.New(rand.NewSource(params.Seed))
	if params.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Benchmark{
		params:  params,
		surface: surface,
		clock:   time.Now,
		spawner: NewSpawner(params, rng),
		integ:   NewIntegrator(params),
		store:   NewStore(params.InitialPopulation),
		state:   StateIdle,
	}
}

// SetClock replaces the wall-time source. Call before Start.
func (b *Benchmark) SetClock(c Clock) { b.clock = c }

// SetRand replaces the spawn random source. Call before Start.
func (b *Benchmark) SetRand(rng *rand.Rand) { b.spawner = NewSpawner(b.params, rng) }

func (b *Benchmark) AddObserver(o Observer) { b.observers = append(b.observers, o) }

func (b *Benchmark) Params() Params { return b.params }

// Start transitions Idle (or Finished) to Running. It fails, leaving all
// state untouched, if the surface is not ready or a run is already active.
func (b *Benchmark) Start() error {
	if b.state == StateRunning {
		return ErrAlreadyRunning
	}
	if b.surface == nil || !b.surface.Ready() {
		return ErrSurfaceNotReady
	}

	b.store.Reset()
	b.history = b.history[:0]
	b.interactions = 0
	b.currentFPS = 0
	b.framesSince = 0
	b.results = nil

	b.spawner.Spawn(b.store, b.params.InitialPopulation)

	now := b.clock()
	b.startedAt = now
	b.lastSampleAt = now
	b.endAt = now.Add(time.Duration(b.params.DurationSec * float64(time.Second)))
	b.state = StateRunning
	return nil
}

// Tick runs one frame: sampling check and ramp, completion check, one
// integration step, render handoff. It is a no-op outside Running.
func (b *Benchmark) Tick() {
	if b.state != StateRunning {
		return
	}

	now := b.clock()
	b.framesSince++

	interval := time.Duration(b.params.SamplingIntervalMs) * time.Millisecond
	if since := now.Sub(b.lastSampleAt); since >= interval {
		b.sample(now, since)
	}

	if !now.Before(b.endAt) {
		b.finish()
		return
	}

	b.interactions += int64(b.integ.Step(b.store, b.params.Dt))

	if b.surface != nil {
		w, h := b.surface.Size()
		b.surface.Draw(Frame{
			Bodies: b.store.Bodies(),
			Width:  w,
			Height: h,
			Stress: b.Stress(),
		})
	}
}

// Cancel ends the run early, computing results from whatever history exists.
// Harmless outside Running.
func (b *Benchmark) Cancel() {
	if b.state != StateRunning {
		return
	}
	b.finish()
}

func (b *Benchmark) sample(now time.Time, since time.Duration) {
	fps := float64(b.framesSince) * 1000 / float64(since.Milliseconds())
	b.currentFPS = fps

	s := Sample{
		Elapsed:    now.Sub(b.startedAt).Seconds(),
		FPS:        fps,
		Population: b.store.Len(),
	}
	b.history = append(b.history, s)
	for _, o := range b.observers {
		o.OnSample(s)
	}

	b.framesSince = 0
	b.lastSampleAt = now

	b.spawner.Spawn(b.store, b.params.RampStep(fps))
}

func (b *Benchmark) finish() {
	avg := averageFPS(b.history)
	history := make([]Sample, len(b.history))
	copy(history, b.history)

	b.results = &Results{
		Score:          int64(math.Floor(float64(b.interactions) / 100000 * (avg / 60))),
		PeakPopulation: b.store.Len(),
		AverageFPS:     avg,
		Interactions:   b.interactions,
		History:        history,
	}
	b.frozenElapsed = b.clock().Sub(b.startedAt)
	b.state = StateFinished
}

func (b *Benchmark) State() RunState { return b.state }

func (b *Benchmark) Population() int { return b.store.Len() }

func (b *Benchmark) CurrentFPS() float64 { return b.currentFPS }

func (b *Benchmark) Interactions() int64 { return b.interactions }

// Elapsed is the wall time since Start, zero when Idle and frozen once
// Finished.
func (b *Benchmark) Elapsed() time.Duration {
	switch b.state {
	case StateIdle:
		return 0
	case StateFinished:
		return b.frozenElapsed
	}
	return b.clock().Sub(b.startedAt)
}

// Progress is elapsed/duration clamped to [0,1].
func (b *Benchmark) Progress() float64 {
	if b.state == StateIdle {
		return 0
	}
	total := b.endAt.Sub(b.startedAt)
	if total <= 0 {
		return 1
	}
	p := float64(b.Elapsed()) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// Stress is the normalized load fraction min(1, population/StressFullScale).
func (b *Benchmark) Stress() float64 {
	s := float64(b.store.Len()) / float64(b.params.StressFullScale)
	if s > 1 {
		return 1
	}
	return s
}

// History returns the recorded samples so far. The returned slice must be
// treated as read-only.
func (b *Benchmark) History() []Sample { return b.history }

// Results returns the frozen outputs of the last finished run, nil before
// the first finish and after a restart.
func (b *Benchmark) Results() *Results { return b.results }
