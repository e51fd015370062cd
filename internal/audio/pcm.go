package audio

import (
	"encoding/binary"
	"math"
)

// FloatToPCM16 maps a sample in [-1, 1] to int16. Full scale maps to
// ±32767 so that the only error introduced is rounding; out-of-range input
// is clipped.
func FloatToPCM16(s float32) int16 {
	v := math.Round(float64(s) * MaxPCM16)
	if v > MaxPCM16 {
		return MaxPCM16
	} else if v < MinPCM16 {
		return MinPCM16
	}
	return int16(v)
}

// PCM16ToFloat is the inverse of FloatToPCM16, up to rounding.
func PCM16ToFloat(v int16) float32 {
	f := float32(v) / MaxPCM16
	if f < -1 {
		return -1
	}
	return f
}

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// AppendPCM16 encodes src as little-endian 16-bit PCM onto dst.
func AppendPCM16(dst []byte, src []float32) []byte {
	for _, s := range src {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(FloatToPCM16(s)))
	}
	return dst
}

// BytesToSamples decodes little-endian 16-bit PCM. A trailing odd byte is
// ignored.
func BytesToSamples(b []byte) []int16 {
	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*2 : i*2+2]))
	}
	return samples
}
