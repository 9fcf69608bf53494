package runner

import "mergebench/internal/config"

// Benchmark runs trials invocations of tool against one scenario and returns
// a warm-up-adjusted mean elapsed time in milliseconds, or FailedTime when
// every trial failed. Every trial runs regardless of earlier failures, and
// every trial writes the same output path, so the last successful artifact is
// the one that survives for parsing; timing and the final artifact are
// treated as orthogonal because the tools are expected to be deterministic.
func Benchmark(tool config.Tool, base, left, right, outputDir string, trials int) float64 {
	var times []float64
	for i := 0; i < trials; i++ {
		t := RunTrial(tool, base, left, right, outputDir)
		if t.OK {
			times = append(times, t.ElapsedMS)
		}
	}
	return Aggregate(times)
}

// Aggregate reduces the successful trial timings, in execution order, to one
// number: with two or more successes the first is discarded to amortize
// cold-start cost, with one it is used as-is, with none the result is
// FailedTime. The mean is rounded to 4 decimal places.
func Aggregate(times []float64) float64 {
	if len(times) == 0 {
		return FailedTime
	}
	if len(times) > 1 {
		times = times[1:]
	}
	var sum float64
	for _, v := range times {
		sum += v
	}
	return round4(sum / float64(len(times)))
}
