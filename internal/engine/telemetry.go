package engine

// Sample is one telemetry record, taken once per sampling interval. Samples
// are value copies: unlike the body store, they are safe to retain and hand
// to other goroutines.
type Sample struct {
	Elapsed    float64 `json:"elapsed_seconds"`
	FPS        float64 `json:"fps"`
	Population int     `json:"population"`
}

// Observer receives each sample as it is recorded. Observers run on the tick
// goroutine and should hand work off rather than block the frame.
type Observer interface {
	OnSample(s Sample)
}

// averageFPS is the mean of the recorded sample rates, 0 for an empty
// history.
func averageFPS(history []Sample) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range history {
		sum += s.FPS
	}
	return sum / float64(len(history))
}
