package engine

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Benchmark lifecycle", func() {
	var (
		params  Params
		surface *stubSurface
		clock   *fakeClock
		bench   *Benchmark
	)

	BeforeEach(func() {
		params = DefaultParams()
		params.DurationSec = 1.0
		params.SamplingIntervalMs = 500
		params.InitialPopulation = 10
		params.Seed = 1

		surface = &stubSurface{ready: true}
		clock = &fakeClock{now: time.Unix(1000, 0)}
		bench = New(params, surface)
		bench.SetClock(clock.Now)
		bench.SetRand(rand.New(rand.NewSource(1)))
	})

	// tickEvery advances the clock by step before each of n ticks.
	tickEvery := func(n int, step time.Duration) {
		for i := 0; i < n; i++ {
			clock.Advance(step)
			bench.Tick()
		}
	}

	Describe("Start", func() {
		It("begins in Idle", func() {
			Expect(bench.State()).To(Equal(StateIdle))
		})

		It("refuses to start without a ready surface", func() {
			surface.ready = false
			Expect(bench.Start()).To(MatchError(ErrSurfaceNotReady))
			Expect(bench.State()).To(Equal(StateIdle))
			Expect(bench.Population()).To(BeZero())
		})

		It("refuses a second start while running", func() {
			Expect(bench.Start()).To(Succeed())
			Expect(bench.Start()).To(MatchError(ErrAlreadyRunning))
		})

		It("seeds the initial population", func() {
			Expect(bench.Start()).To(Succeed())
			Expect(bench.State()).To(Equal(StateRunning))
			Expect(bench.Population()).To(Equal(10))
		})
	})

	Describe("a full deterministic run", func() {
		// 1000 ms duration, 500 ms sampling interval, ticks every 100 ms:
		// exactly two samples before the end time is reached.
		BeforeEach(func() {
			Expect(bench.Start()).To(Succeed())
			tickEvery(10, 100*time.Millisecond)
		})

		It("transitions Idle -> Running -> Finished", func() {
			Expect(bench.State()).To(Equal(StateFinished))
		})

		It("records exactly two samples in increasing elapsed order", func() {
			history := bench.Results().History
			Expect(history).To(HaveLen(2))
			Expect(history[0].Elapsed).To(BeNumerically("~", 0.5, 1e-9))
			Expect(history[1].Elapsed).To(BeNumerically("~", 1.0, 1e-9))
			Expect(history[1].Elapsed).To(BeNumerically(">", history[0].Elapsed))
		})

		It("measures fps from frames per interval", func() {
			// 5 frames per 500 ms interval.
			for _, s := range bench.Results().History {
				Expect(s.FPS).To(BeNumerically("~", 10.0, 1e-9))
			}
		})

		It("never shrinks the population", func() {
			history := bench.Results().History
			Expect(history[1].Population).To(BeNumerically(">=", history[0].Population))
			Expect(bench.Results().PeakPopulation).To(BeNumerically(">=", history[1].Population))
		})

		It("ramps by the low amount at 10 fps", func() {
			// 10 fps < RampLowFPS, so each sample adds RampLowAdd bodies.
			history := bench.Results().History
			Expect(history[0].Population).To(Equal(10))
			Expect(history[1].Population).To(Equal(10 + params.RampLowAdd))
			Expect(bench.Results().PeakPopulation).To(Equal(10 + 2*params.RampLowAdd))
		})

		It("freezes results consistent with the scoring formula", func() {
			r := bench.Results()
			Expect(r.AverageFPS).To(BeNumerically("~", 10.0, 1e-9))
			Expect(r.Interactions).To(Equal(bench.Interactions()))
			want := int64(math.Floor(float64(r.Interactions) / 100000 * (r.AverageFPS / 60)))
			Expect(r.Score).To(Equal(want))
		})

		It("hands the surface one frame per integrated tick", func() {
			// The final tick finishes without integrating or drawing.
			Expect(surface.frames).To(Equal(9))
			Expect(surface.last.Width).To(Equal(800))
			Expect(surface.last.Stress).To(BeNumerically(">", 0))
		})

		It("ignores further ticks once finished", func() {
			before := bench.Interactions()
			tickEvery(3, 100*time.Millisecond)
			Expect(bench.Interactions()).To(Equal(before))
			Expect(bench.State()).To(Equal(StateFinished))
		})
	})

	Describe("Cancel", func() {
		It("finishes early with the history recorded so far", func() {
			Expect(bench.Start()).To(Succeed())
			tickEvery(6, 100*time.Millisecond) // one sample at 500 ms
			bench.Cancel()

			Expect(bench.State()).To(Equal(StateFinished))
			Expect(bench.Results().History).To(HaveLen(1))
		})

		It("computes an average of zero from an empty history", func() {
			Expect(bench.Start()).To(Succeed())
			bench.Cancel()

			Expect(bench.Results().AverageFPS).To(BeZero())
			Expect(bench.Results().Score).To(BeZero())
		})

		It("is a no-op when idle", func() {
			bench.Cancel()
			Expect(bench.State()).To(Equal(StateIdle))
		})
	})

	Describe("re-running", func() {
		It("clears history, counters, and prior-run bodies", func() {
			Expect(bench.Start()).To(Succeed())
			tickEvery(10, 100*time.Millisecond)
			Expect(bench.State()).To(Equal(StateFinished))
			Expect(bench.Population()).To(BeNumerically(">", 10))

			Expect(bench.Start()).To(Succeed())
			Expect(bench.State()).To(Equal(StateRunning))
			Expect(bench.Population()).To(Equal(10))
			Expect(bench.History()).To(BeEmpty())
			Expect(bench.Interactions()).To(BeZero())
			Expect(bench.Results()).To(BeNil())
		})
	})

	Describe("progress", func() {
		It("tracks elapsed over duration", func() {
			Expect(bench.Start()).To(Succeed())
			tickEvery(5, 100*time.Millisecond)
			Expect(bench.Progress()).To(BeNumerically("~", 0.5, 1e-9))
			tickEvery(10, 100*time.Millisecond)
			Expect(bench.Progress()).To(Equal(1.0))
		})
	})
})
