package analysis

import "math"

// CenteredL2Discrepancy is Hickernell's centred L2 discrepancy of the
// points (x[i], y[i]) in [0,1]². Smaller is more uniform.
func CenteredL2Discrepancy(x, y []float64) float64 {
	n := len(x)
	if n == 0 || len(y) != n {
		return math.NaN()
	}

	term1 := math.Pow(13.0/12.0, 2)

	term2 := 0.0
	for i := 0; i < n; i++ {
		term2 += centredSingle(x[i]) * centredSingle(y[i])
	}
	term2 *= 2 / float64(n)

	term3 := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			term3 += centredPair(x[i], x[j]) * centredPair(y[i], y[j])
		}
	}
	term3 /= float64(n * n)

	return math.Sqrt(math.Max(0, term1-term2+term3))
}

func centredSingle(u float64) float64 {
	d := math.Abs(u - 0.5)
	return 1 + 0.5*d - 0.5*d*d
}

func centredPair(u, v float64) float64 {
	return 1 + 0.5*math.Abs(u-0.5) + 0.5*math.Abs(v-0.5) - 0.5*math.Abs(u-v)
}
