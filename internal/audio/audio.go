// Package audio converts floating-point samples to 16-bit linear PCM.
package audio

const (
	BitDepth       = 16
	BytesPerSample = BitDepth / 8
	MaxPCM16       = 32767
	MinPCM16       = -32768
	ChunkFrames    = 4096 // frames per encoded write
)
