package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"
)

// ResidualSpectrum averages the FFT magnitude of every row of res. The
// result holds bins 0..c/2, bin k being k cycles across the unit interval.
func ResidualSpectrum(res mat.Matrix) []float64 {
	r, c := res.Dims()
	if r == 0 || c == 0 {
		return nil
	}
	spectrum := make([]float64, c/2+1)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, res)
		for k, v := range fft.FFTReal(row)[:len(spectrum)] {
			spectrum[k] += cmplx.Abs(v)
		}
	}
	for k := range spectrum {
		spectrum[k] /= float64(r)
	}
	return spectrum
}

// DominantFrequency is the strongest non-DC bin, or 0 when there is none.
func DominantFrequency(spectrum []float64) int {
	best, bestVal := 0, 0.0
	for k := 1; k < len(spectrum); k++ {
		if spectrum[k] > bestVal {
			best, bestVal = k, spectrum[k]
		}
	}
	return best
}
