package noise

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind selects the spectral character of the generated noise.
type Kind int

const (
	White Kind = iota + 1
	Pink
)

func (k Kind) String() string {
	switch k {
	case White:
		return "white"
	case Pink:
		return "pink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a name ("white", "pink") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "pink":
		return Pink, nil
	}
	return 0, &RequestError{Field: "kind", Value: s, Reason: "must be white or pink"}
}

// GenerationRequest describes one synthesis run. It is a plain value and is
// never mutated after construction.
type GenerationRequest struct {
	Channels        int
	SampleRate      int // Hz
	DurationSeconds int
	Kind            Kind
}

// Validate reports every offending field. It has no side effects.
func (r GenerationRequest) Validate() error {
	var errs []error
	if r.Channels <= 0 {
		errs = append(errs, &RequestError{Field: "channels", Value: fmt.Sprint(r.Channels)})
	}
	if r.SampleRate <= 0 {
		errs = append(errs, &RequestError{Field: "sample rate", Value: fmt.Sprint(r.SampleRate)})
	}
	if r.DurationSeconds <= 0 {
		errs = append(errs, &RequestError{Field: "duration", Value: fmt.Sprint(r.DurationSeconds)})
	}
	if r.Kind != White && r.Kind != Pink {
		errs = append(errs, &RequestError{Field: "kind", Value: r.Kind.String(), Reason: "must be white or pink"})
	}
	return errors.Join(errs...)
}

// FramesPerChannel is SampleRate*DurationSeconds, or -1 on overflow.
func (r GenerationRequest) FramesPerChannel() int {
	return mulChecked(r.SampleRate, r.DurationSeconds)
}

// NumSamples is the interleaved buffer length, or -1 on overflow.
func (r GenerationRequest) NumSamples() int {
	frames := r.FramesPerChannel()
	if frames < 0 {
		return -1
	}
	return mulChecked(frames, r.Channels)
}

func mulChecked(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return -1
	}
	return a * b
}
