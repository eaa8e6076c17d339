package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the magnitude of the first n/2+1 Fourier
// coefficients of data after removing its mean and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	x := make([]float64, n)
	copy(x, data)
	floats.AddConst(-floats.Sum(x)/float64(n), x)
	if n > 1 {
		window.Apply(x, window.Hann)
	}

	coeffs := fft.FFTReal(x)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Frequencies returns the bin centres matching PowerSpectrum for n samples
// spaced dt apart.
func Frequencies(n int, dt float64) []float64 {
	if n == 0 {
		return nil
	}
	f := make([]float64, n/2+1)
	for i := range f {
		f[i] = float64(i) / (float64(n) * dt)
	}
	return f
}

// DominantFrequency is the frequency of the strongest non-DC bin, or 0 if
// the series is too short or flat.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	if ps[k] == 0 {
		return 0
	}
	return Frequencies(len(data), dt)[k]
}
