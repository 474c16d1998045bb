// Package engine implements the self-adjusting N-body stress benchmark.
//
// A [Benchmark] owns one run: it grows a swarm of mutually gravitating
// bodies, measures the achieved frame rate over fixed sampling intervals,
// and feeds that measurement back into the population ramp so load converges
// toward the most the host can sustain. The main pieces:
//
//   - [Store]: the mutable body population of a run
//   - [Integrator]: one fixed-dt step of softened pairwise gravity with
//     stride sparsification at high population
//   - [Spawner]: randomized body seeding (injectable random source)
//   - [Params.RampStep]: the fps-to-bodies feedback rule
//   - [Benchmark]: Idle/Running/Finished state machine, telemetry, scoring
//
// # Driving the loop
//
// The engine renders nothing and schedules nothing. A frame driver (the TUI,
// a headless loop, a test) calls [Benchmark.Tick] once per frame; each tick
// samples telemetry if an interval elapsed, ramps population, integrates
// once, and hands a frame-scoped borrow of the store to the attached
// [Surface].
//
// # Thread safety
//
// Benchmark instances are NOT thread-safe: one goroutine starts, ticks, and
// cancels. Observers receive immutable [Sample] values and may fan them out
// to other goroutines.
package engine
