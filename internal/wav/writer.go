// Package wav writes and reads 16-bit linear PCM RIFF/WAVE files.
package wav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/satindergrewal/noisegen/internal/audio"
)

var (
	// ErrSinkOpen means the output destination could not be created.
	ErrSinkOpen = errors.New("cannot create output")
	// ErrSinkWrite means fewer samples were written than requested.
	ErrSinkWrite = errors.New("short write")
	// ErrUnsupportedFormat means the descriptor is not 16-bit PCM the
	// container can describe.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

const (
	headerSize   = 44
	fmtChunkSize = 16
	formatPCM    = 1
	maxDataSize  = math.MaxUint32 - (headerSize - 8)
)

// WriteError reports how many samples reached the writer before it failed.
type WriteError struct {
	Written  int
	Expected int
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("short write: %d of %d samples written: %v", e.Written, e.Expected, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrSinkWrite }

// header is the canonical 44-byte PCM WAVE header.
type header struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

func newHeader(sampleRate, channels, numSamples int) header {
	blockAlign := channels * audio.BytesPerSample
	dataSize := uint32(numSamples * audio.BytesPerSample)
	return header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      headerSize - 8 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       fmtChunkSize,
		AudioFormat:   formatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: audio.BitDepth,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// CheckFormat reports whether the sink can describe numSamples interleaved
// samples with this rate, channel count and bit depth.
func CheckFormat(sampleRate, channels, bitDepth, numSamples int) error {
	switch {
	case bitDepth != audio.BitDepth:
		return fmt.Errorf("%w: %d-bit samples, only %d-bit PCM is written", ErrUnsupportedFormat, bitDepth, audio.BitDepth)
	case channels <= 0 || channels > math.MaxUint16:
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	case sampleRate <= 0 || int64(sampleRate)*int64(channels)*audio.BytesPerSample > math.MaxUint32:
		return fmt.Errorf("%w: sample rate %d Hz", ErrUnsupportedFormat, sampleRate)
	case numSamples%channels != 0:
		return fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames", ErrUnsupportedFormat, numSamples, channels)
	case int64(numSamples)*audio.BytesPerSample > maxDataSize:
		return fmt.Errorf("%w: %d samples exceed the RIFF size limit", ErrUnsupportedFormat, numSamples)
	}
	return nil
}

// Encode writes a complete WAV stream for interleaved samples to w.
func Encode(w io.Writer, sampleRate, channels, bitDepth int, samples []float32) error {
	if err := CheckFormat(sampleRate, channels, bitDepth, len(samples)); err != nil {
		return err
	}

	h := newHeader(sampleRate, channels, len(samples))
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return &WriteError{Written: 0, Expected: len(samples), Err: err}
	}

	chunk := audio.ChunkFrames * channels
	buf := make([]byte, 0, chunk*audio.BytesPerSample)
	written := 0
	for written < len(samples) {
		end := min(written+chunk, len(samples))
		buf = audio.AppendPCM16(buf[:0], samples[written:end])
		n, err := w.Write(buf)
		written += n / audio.BytesPerSample
		if err == nil && n < len(buf) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return &WriteError{Written: written, Expected: len(samples), Err: err}
		}
	}
	return nil
}

// Write is the audio sink: it serializes samples as a WAV file at path.
// Data goes to a temporary file in the same directory that is renamed into
// place only after every sample has been written and synced, so a failed
// write never leaves a truncated file at path.
func Write(path string, sampleRate, channels, bitDepth int, samples []float32) (err error) {
	if err := CheckFormat(sampleRate, channels, bitDepth, len(samples)); err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrSinkOpen, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = encodeBuffered(tmp, sampleRate, channels, bitDepth, samples); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrSinkWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrSinkWrite, path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSinkOpen, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSinkOpen, path, err)
	}
	return nil
}

// countingWriter tracks the bytes the underlying writer accepted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// samples is the number of whole samples past the header that reached w.
func (c *countingWriter) samples() int {
	return int(max(0, c.n-headerSize) / audio.BytesPerSample)
}

// encodeBuffered runs Encode through a write buffer. A WriteError reports
// the samples w itself accepted, not those still held in the buffer.
func encodeBuffered(w io.Writer, sampleRate, channels, bitDepth int, samples []float32) error {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, 1<<16)
	if err := Encode(bw, sampleRate, channels, bitDepth, samples); err != nil {
		var we *WriteError
		if !errors.As(err, &we) {
			return err
		}
		return &WriteError{Written: cw.samples(), Expected: len(samples), Err: we.Err}
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{Written: cw.samples(), Expected: len(samples), Err: err}
	}
	return nil
}
