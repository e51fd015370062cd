// Package spectrum estimates power spectral density and its log-log slope.
// It is used to check that generated noise has the intended color: a slope
// near 0 for white noise and near -1 (3 dB per octave) for pink noise.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

const bandsPerOctave = 3

var errTooShort = errors.New("spectrum: signal shorter than one segment")

// PSD is a one-sided power spectrum. Power[k] is the mean power at
// frequency k*SampleRate/SegmentLen. Units are arbitrary but consistent
// across bins.
type PSD struct {
	SampleRate int
	SegmentLen int
	Power      []float64
}

// Freq returns the centre frequency of bin k in Hz.
func (p PSD) Freq(k int) float64 {
	return float64(k) * float64(p.SampleRate) / float64(p.SegmentLen)
}

// Welch averages Hann-windowed periodograms over half-overlapping segments
// of segLen samples. Each segment has its mean removed first.
func Welch(x []float64, sampleRate, segLen int) (PSD, error) {
	if segLen < 2 {
		return PSD{}, fmt.Errorf("spectrum: segment length %d too small", segLen)
	}
	if len(x) < segLen {
		return PSD{}, errTooShort
	}

	fft := fourier.NewFFT(segLen)
	seg := make([]float64, segLen)
	coeff := make([]complex128, segLen/2+1)
	power := make([]float64, segLen/2+1)

	hop := segLen / 2
	segments := 0
	for start := 0; start+segLen <= len(x); start += hop {
		copy(seg, x[start:start+segLen])
		mean := stat.Mean(seg, nil)
		for i := range seg {
			seg[i] -= mean
		}
		window.Hann(seg)
		coeff = fft.Coefficients(coeff, seg)
		for k, c := range coeff {
			a := cmplx.Abs(c)
			power[k] += a * a
		}
		segments++
	}
	for k := range power {
		power[k] /= float64(segments)
	}
	return PSD{SampleRate: sampleRate, SegmentLen: segLen, Power: power}, nil
}

// Slope fits log10(power) against log10(frequency) over fractional-octave
// bands between lo and hi Hz and returns the fitted slope. Pink noise gives
// about -1, white noise about 0.
func (p PSD) Slope(lo, hi float64) (float64, error) {
	if lo <= 0 || hi <= lo {
		return 0, fmt.Errorf("spectrum: invalid band %g..%g Hz", lo, hi)
	}
	step := math.Pow(2, 1.0/bandsPerOctave)

	var xs, ys []float64
	for edge := lo; edge < hi; edge *= step {
		upper := math.Min(edge*step, hi)
		var sum float64
		var n int
		for k := 1; k < len(p.Power); k++ {
			f := p.Freq(k)
			if f >= edge && f < upper {
				sum += p.Power[k]
				n++
			}
		}
		if n == 0 || sum <= 0 {
			continue
		}
		xs = append(xs, math.Log10(math.Sqrt(edge*upper)))
		ys = append(ys, math.Log10(sum/float64(n)))
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("spectrum: fewer than two populated bands in %g..%g Hz", lo, hi)
	}

	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta, nil
}

// Channel extracts one channel from interleaved samples as float64.
func Channel(samples []float32, channels, ch int) []float64 {
	if channels <= 0 || ch < 0 || ch >= channels {
		return nil
	}
	out := make([]float64, 0, len(samples)/channels)
	for i := ch; i < len(samples); i += channels {
		out = append(out, float64(samples[i]))
	}
	return out
}
