package wav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/satindergrewal/noisegen/internal/audio"
)

// ErrNotWAV means the input is not a PCM RIFF/WAVE stream.
var ErrNotWAV = errors.New("not a PCM WAV file")

// Info describes a WAV file's format and length.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int64
}

// Duration returns the playing time implied by Frames and SampleRate.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Frames) * time.Second / time.Duration(i.SampleRate)
}

// Samples is the total interleaved sample count.
func (i Info) Samples() int64 { return i.Frames * int64(i.Channels) }

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// readHeader walks the RIFF chunk list up to the start of the data chunk
// and returns the format and the data size in bytes.
func readHeader(r io.Reader) (Info, uint32, error) {
	var riff struct {
		ID   [4]byte
		Size uint32
		WAVE [4]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return Info{}, 0, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}
	if string(riff.ID[:]) != "RIFF" || string(riff.WAVE[:]) != "WAVE" {
		return Info{}, 0, ErrNotWAV
	}

	var f *fmtChunk
	for {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return Info{}, 0, fmt.Errorf("%w: missing data chunk: %w", ErrNotWAV, err)
		}
		switch string(ch.ID[:]) {
		case "fmt ":
			if ch.Size < fmtChunkSize {
				return Info{}, 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrNotWAV, ch.Size)
			}
			f = new(fmtChunk)
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return Info{}, 0, fmt.Errorf("%w: %w", ErrNotWAV, err)
			}
			if err := skip(r, int64(ch.Size-fmtChunkSize)+int64(ch.Size&1)); err != nil {
				return Info{}, 0, err
			}
		case "data":
			if f == nil {
				return Info{}, 0, fmt.Errorf("%w: data before fmt chunk", ErrNotWAV)
			}
			if f.AudioFormat != formatPCM || f.NumChannels == 0 || f.BitsPerSample != audio.BitDepth ||
				f.BlockAlign != f.NumChannels*audio.BytesPerSample {
				return Info{}, 0, fmt.Errorf("%w: format %d, %d channels, %d-bit", ErrUnsupportedFormat, f.AudioFormat, f.NumChannels, f.BitsPerSample)
			}
			info := Info{
				SampleRate: int(f.SampleRate),
				Channels:   int(f.NumChannels),
				BitDepth:   int(f.BitsPerSample),
				Frames:     int64(ch.Size) / int64(f.BlockAlign),
			}
			return info, ch.Size, nil
		default:
			if err := skip(r, int64(ch.Size)+int64(ch.Size&1)); err != nil {
				return Info{}, 0, err
			}
		}
	}
}

func skip(r io.Reader, n int64) error {
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWAV, err)
	}
	return nil
}

// ReadInfo reads only the header of the WAV file at path.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	info, _, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", path, err)
	}
	return info, nil
}

// Decode reads the WAV file at path and returns its interleaved samples
// scaled back to [-1, 1].
func Decode(path string) (Info, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	info, size, err := readHeader(r)
	if err != nil {
		return Info{}, nil, fmt.Errorf("read %s: %w", path, err)
	}

	// The header's size is untrusted; read no more than the file holds.
	data, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return Info{}, nil, fmt.Errorf("read %s: data chunk: %w", path, err)
	}
	if len(data) < int(size) {
		return Info{}, nil, fmt.Errorf("read %s: %w: data chunk holds %d of %d bytes", path, ErrNotWAV, len(data), size)
	}

	ints := audio.BytesToSamples(data)
	samples := make([]float32, len(ints))
	for i, v := range ints {
		samples[i] = audio.PCM16ToFloat(v)
	}
	return info, samples, nil
}
