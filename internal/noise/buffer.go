package noise

// DefaultMaxSamples is the largest sample count whose 16-bit PCM data still
// fits a RIFF container's 32-bit size field.
const DefaultMaxSamples = (1<<32 - 1 - 36) / 2

// SampleBuffer holds interleaved samples in [-1, 1]: sample i belongs to
// channel i % Channels(). Its length is fixed when it is allocated.
type SampleBuffer struct {
	channels   int
	sampleRate int
	samples    []float32
}

// Len returns the number of samples still owned by the buffer.
func (b *SampleBuffer) Len() int { return len(b.samples) }

func (b *SampleBuffer) Channels() int   { return b.channels }
func (b *SampleBuffer) SampleRate() int { return b.sampleRate }

// Take moves the samples out of the buffer. The buffer is empty afterwards
// and further calls return nil.
func (b *SampleBuffer) Take() []float32 {
	s := b.samples
	b.samples = nil
	return s
}

type options struct {
	maxSamples int
}

// Option tunes a synthesis call.
type Option func(*options)

// WithMaxSamples caps the buffer length. Requests above the cap fail with
// ErrAllocation instead of attempting the allocation.
func WithMaxSamples(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSamples = n
		}
	}
}

func allocate(req GenerationRequest, opts []Option) (*SampleBuffer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	o := options{maxSamples: DefaultMaxSamples}
	for _, opt := range opts {
		opt(&o)
	}

	n := req.NumSamples()
	if n < 0 || n > o.maxSamples {
		return nil, &AllocationError{Length: n, Limit: o.maxSamples}
	}
	return &SampleBuffer{
		channels:   req.Channels,
		sampleRate: req.SampleRate,
		samples:    make([]float32, n),
	}, nil
}
