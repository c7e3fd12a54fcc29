package analysis

// average computes the mean of a rep field. An empty set averages to 0 by
// policy rather than being an error.
func average(reps []Rep, value func(Rep) float64) float64 {
	if len(reps) == 0 {
		return 0
	}
	var sum float64
	for _, rep := range reps {
		sum += value(rep)
	}
	return sum / float64(len(reps))
}

func averageDuration(reps []Rep) float64 {
	return average(reps, func(r Rep) float64 { return r.Duration })
}

func averageVelocity(reps []Rep) float64 {
	return average(reps, func(r Rep) float64 { return r.VelocityScore })
}

// velocityDropoff returns the percentage decline from the first rep's
// velocity score to the last rep's. First and last are positional: reps must
// already be in detection order. Fewer than two reps, or a first score of 0,
// yield 0 ("no measurable drop").
func velocityDropoff(reps []Rep) float64 {
	if len(reps) < 2 {
		return 0
	}
	first := reps[0].VelocityScore
	last := reps[len(reps)-1].VelocityScore
	if first == 0 {
		return 0
	}
	return (first - last) / first * 100
}
