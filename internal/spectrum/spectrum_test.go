package spectrum

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelchFindsSinePeak(t *testing.T) {
	const fs, seg = 8000, 256
	x := make([]float64, 4096)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / fs)
	}
	psd, err := Welch(x, fs, seg)
	require.NoError(t, err)
	require.Len(t, psd.Power, seg/2+1)

	peak := 0
	for k := range psd.Power {
		if psd.Power[k] > psd.Power[peak] {
			peak = k
		}
	}
	assert.Equal(t, 1000.0, psd.Freq(peak))
}

func TestWelchRemovesDC(t *testing.T) {
	x := make([]float64, 512)
	for i := range x {
		x[i] = 0.75
	}
	psd, err := Welch(x, 1000, 128)
	require.NoError(t, err)
	for k, p := range psd.Power {
		assert.InDelta(t, 0, p, 1e-18, "bin %d", k)
	}
}

func TestWelchErrors(t *testing.T) {
	_, err := Welch(make([]float64, 10), 1000, 64)
	assert.ErrorIs(t, err, errTooShort)
	_, err = Welch(make([]float64, 10), 1000, 1)
	assert.Error(t, err)
}

func TestSlopeOfPowerLaw(t *testing.T) {
	psd := PSD{SampleRate: 8000, SegmentLen: 1024, Power: make([]float64, 513)}
	for k := 1; k < len(psd.Power); k++ {
		psd.Power[k] = 1 / psd.Freq(k)
	}
	slope, err := psd.Slope(50, 3000)
	require.NoError(t, err)
	assert.InDelta(t, -1, slope, 0.05)

	for k := range psd.Power {
		psd.Power[k] = 2
	}
	slope, err = psd.Slope(50, 3000)
	require.NoError(t, err)
	assert.InDelta(t, 0, slope, 1e-9)
}

func TestSlopeWhiteNoise(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	x := make([]float64, 32000)
	for i := range x {
		x[i] = 2*rng.Float64() - 1
	}
	psd, err := Welch(x, 16000, 1024)
	require.NoError(t, err)
	slope, err := psd.Slope(64, 4000)
	require.NoError(t, err)
	assert.InDelta(t, 0, slope, 0.15)
}

func TestSlopeBadBand(t *testing.T) {
	psd := PSD{SampleRate: 8000, SegmentLen: 8, Power: make([]float64, 5)}
	_, err := psd.Slope(0, 100)
	assert.Error(t, err)
	_, err = psd.Slope(100, 50)
	assert.Error(t, err)
	_, err = psd.Slope(1, 2) // no bins fall in the band
	assert.Error(t, err)
}

func TestChannel(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5, 6}
	assert.Equal(t, []float64{1, 3, 5}, Channel(samples, 2, 0))
	assert.Equal(t, []float64{2, 4, 6}, Channel(samples, 2, 1))
	assert.Nil(t, Channel(samples, 2, 2))
	assert.Nil(t, Channel(samples, 0, 0))
}
