package audio

// Smoothstep returns the smoothstep interpolation for t in [0,1].
// Formula: 3t^2 - 2t^3.
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// ApplyFade ramps the first and last fadeFrames frames of interleaved
// samples in and out along a smoothstep curve. Gains never exceed 1, so
// samples stay in range. The fade is shortened to half the signal when it
// would otherwise overlap.
func ApplyFade(samples []float32, channels, fadeFrames int) {
	if channels <= 0 || fadeFrames <= 0 {
		return
	}
	frames := len(samples) / channels
	if fadeFrames > frames/2 {
		fadeFrames = frames / 2
	}

	for f := 0; f < fadeFrames; f++ {
		gain := float32(Smoothstep(float64(f) / float64(fadeFrames)))
		head := f * channels
		tail := (frames - 1 - f) * channels
		for c := 0; c < channels; c++ {
			samples[head+c] *= gain
			samples[tail+c] *= gain
		}
	}
}
