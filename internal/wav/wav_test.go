package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satindergrewal/noisegen/internal/audio"
)

func TestEncodeHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0, 1, -1, 0.5}
	require.NoError(t, Encode(&buf, 44100, 2, 16, samples))

	b := buf.Bytes()
	require.Len(t, b, headerSize+len(samples)*2)
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, uint32(36+8), binary.LittleEndian.Uint32(b[4:8]))
	assert.Equal(t, "WAVE", string(b[8:12]))
	assert.Equal(t, "fmt ", string(b[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(b[20:22]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(b[22:24]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(b[24:28]))
	assert.Equal(t, uint32(44100*4), binary.LittleEndian.Uint32(b[28:32]))
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(b[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(b[34:36]))
	assert.Equal(t, "data", string(b[36:40]))
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(b[40:44]))

	got := audio.BytesToSamples(b[headerSize:])
	assert.Equal(t, []int16{0, 32767, -32767, 16384}, got)
}

func TestEncodeRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name       string
		rate, ch   int
		bitDepth   int
		numSamples int
	}{
		{"24-bit", 44100, 1, 24, 4},
		{"zero channels", 44100, 0, 16, 4},
		{"zero rate", 0, 1, 16, 4},
		{"partial frame", 44100, 2, 16, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Encode(&bytes.Buffer{}, tt.rate, tt.ch, tt.bitDepth, make([]float32, tt.numSamples))
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

type failingWriter struct {
	limit int // bytes accepted before failing
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	room := w.limit - w.n
	if room >= len(p) {
		w.n += len(p)
		return len(p), nil
	}
	if room < 0 {
		room = 0
	}
	w.n += room
	return room, errors.New("disk full")
}

func TestEncodeShortWrite(t *testing.T) {
	samples := make([]float32, audio.ChunkFrames*3)
	w := &failingWriter{limit: headerSize + audio.ChunkFrames*2}

	err := Encode(w, 8000, 1, 16, samples)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkWrite)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, audio.ChunkFrames, we.Written)
	assert.Equal(t, len(samples), we.Expected)
}

func TestEncodeBufferedCountsAcceptedSamples(t *testing.T) {
	tests := []struct {
		name     string
		samples  int
		accepted int
	}{
		{"failure on final flush", 1000, 100},
		{"failure while buffering", audio.ChunkFrames * 20, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &failingWriter{limit: headerSize + tt.accepted*audio.BytesPerSample}
			err := encodeBuffered(w, 8000, 1, 16, make([]float32, tt.samples))
			require.ErrorIs(t, err, ErrSinkWrite)

			var we *WriteError
			require.ErrorAs(t, err, &we)
			assert.Equal(t, tt.accepted, we.Written)
			assert.Equal(t, tt.samples, we.Expected)
		})
	}
}

func TestWriteAndReadInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := make([]float32, 2*8000)
	for i := range samples {
		samples[i] = float32(i%200)/100 - 1
	}

	require.NoError(t, Write(path, 8000, 2, 16, samples))

	info, err := ReadInfo(path)
	require.NoError(t, err)
	assert.Equal(t, Info{SampleRate: 8000, Channels: 2, BitDepth: 16, Frames: 8000}, info)
	assert.Equal(t, time.Second, info.Duration())
	assert.Equal(t, int64(len(samples)), info.Samples())

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(headerSize+len(samples)*2), st.Size())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestDecodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.wav")
	samples := []float32{0, 0.25, -0.25, 1, -1, 0.999}
	require.NoError(t, Write(path, 22050, 1, 16, samples))

	info, got, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Channels)
	require.Len(t, got, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], got[i], 1.0/audio.MaxPCM16, "sample %d", i)
	}
}

func TestWriteOpenFailureLeavesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.wav")
	err := Write(path, 8000, 1, 16, []float32{0})
	assert.ErrorIs(t, err, ErrSinkOpen)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteRenameFailureRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.wav")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o644))

	err := Write(path, 8000, 1, 16, make([]float32, 8000))
	assert.ErrorIs(t, err, ErrSinkOpen)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".out.wav.*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteUnsupportedDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	err := Write(path, 8000, 1, 8, []float32{0})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadInfoSkipsUnknownChunks(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	buf.WriteString("WAVE")
	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(3))
	buf.Write([]byte{1, 2, 3, 0}) // odd chunk plus pad byte
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, fmtChunk{
		AudioFormat: 1, NumChannels: 1, SampleRate: 16000,
		ByteRate: 32000, BlockAlign: 2, BitsPerSample: 16,
	})
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(6))
	buf.Write(make([]byte, 6))

	path := filepath.Join(t.TempDir(), "list.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	info, err := ReadInfo(path)
	require.NoError(t, err)
	assert.Equal(t, Info{SampleRate: 16000, Channels: 1, BitDepth: 16, Frames: 3}, info)
}

func TestReadInfoRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a riff file"), 0o644))
	_, err := ReadInfo(path)
	assert.ErrorIs(t, err, ErrNotWAV)
}

func TestDecodeRejectsOversizedDataChunk(t *testing.T) {
	var buf bytes.Buffer
	h := newHeader(8000, 1, 3)
	h.DataSize = 0xFFFFFFFF
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &h))
	buf.Write(make([]byte, 6))

	path := filepath.Join(t.TempDir(), "lying.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, samples, err := Decode(path)
	assert.ErrorIs(t, err, ErrNotWAV)
	assert.Nil(t, samples)
}
