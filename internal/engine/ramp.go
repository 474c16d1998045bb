package engine

// RampStep maps a measured frame rate to the number of bodies to add over the
// next sampling interval. Three buckets: plenty of headroom ramps hard, the
// danger zone still trickles (the benchmark is meant to find the breaking
// point, not stabilize below it), and the middle band grows at the default
// rate. Both comparisons are strict, so fps of exactly RampHighFPS or
// RampLowFPS takes the default branch. There is no ramp-down: the controller
// only ever adds.
func (p Params) RampStep(measuredFPS float64) int {
	switch {
	case measuredFPS > p.RampHighFPS:
		return p.RampHighAdd
	case measuredFPS < p.RampLowFPS:
		return p.RampLowAdd
	default:
		return p.RampDefaultAdd
	}
}
