package config

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/satindergrewal/noisegen/internal/noise"
)

// OutputExt is the required extension of the output path.
const OutputExt = ".wav"

// Request is one validated run: where to write and what to generate.
type Request struct {
	Output string
	noise.GenerationRequest
}

// ParseRequest converts the four positional arguments (output path,
// channels, sample rate in Hz, duration in seconds) into a Request. Every
// offending argument is reported, each wrapping noise.ErrInvalidRequest.
func ParseRequest(args []string, kind noise.Kind) (Request, error) {
	if len(args) != 4 {
		return Request{}, &noise.RequestError{
			Field:  "argument count",
			Value:  strconv.Itoa(len(args)),
			Reason: "must be 4 (output channels sample-rate duration)",
		}
	}

	var errs []error
	out := args[0]
	if !strings.EqualFold(filepath.Ext(out), OutputExt) {
		errs = append(errs, &noise.RequestError{Field: "output", Value: out, Reason: "must end in " + OutputExt})
	}

	positive := func(field, s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			errs = append(errs, &noise.RequestError{Field: field, Value: s})
			return 0
		}
		return n
	}
	req := Request{
		Output: out,
		GenerationRequest: noise.GenerationRequest{
			Channels:        positive("channels", args[1]),
			SampleRate:      positive("sample rate", args[2]),
			DurationSeconds: positive("duration", args[3]),
			Kind:            kind,
		},
	}
	if len(errs) > 0 {
		return Request{}, errors.Join(errs...)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

