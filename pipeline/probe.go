package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultFrameRate is used when the probed rate cannot be parsed.
	DefaultFrameRate = 30.0

	minFrameRate = 1.0
	maxFrameRate = 60.0
)

type ffprobeStream struct {
	AvgFrameRate string `json:"avg_frame_rate"`
}

type ffprobeReport struct {
	Streams []ffprobeStream `json:"streams"`
}

// ProbeFrameRate determines the average frame rate of the first video stream
// using ffprobe. A failing ffprobe is a hard error; an unparsable or
// degenerate rate falls back to DefaultFrameRate with a logged warning.
// The returned value is always within [1.0, 60.0].
func (p *Pipeline) ProbeFrameRate(ctx context.Context, source string) (float64, error) {
	output, err := p.Runner.Output(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-print_format", "json",
		"-show_streams",
		source)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	var report ffprobeReport
	if err := json.Unmarshal(output, &report); err != nil {
		return 0, fmt.Errorf("%w: parse ffprobe output: %w", ErrProbeFailed, err)
	}

	raw := "0/0"
	if len(report.Streams) > 0 && report.Streams[0].AvgFrameRate != "" {
		raw = report.Streams[0].AvgFrameRate
	}

	fps := NormalizeFrameRate(raw, p.Log)
	p.log(fmt.Sprintf("source frame rate: %.2f", fps))
	return fps, nil
}

// NormalizeFrameRate converts a rational frame-rate string ("30/1", "2997/100")
// into a usable rate. Unparsable values and zero denominators log a warning
// and yield DefaultFrameRate; everything else is clamped to [1.0, 60.0].
// Downstream encoders behave unpredictably outside that range, so degrading
// silently keeps the unattended case working.
func NormalizeFrameRate(raw string, log Logger) float64 {
	value, ok := parseRational(raw)
	if !ok {
		if log != nil {
			log(fmt.Sprintf("could not parse frame rate %q, using %g", raw, DefaultFrameRate))
		}
		return DefaultFrameRate
	}
	return clampFrameRate(value)
}

// parseRational parses "num/den" or a plain number. Both positions accept
// fractional values, so "0.5/1" parses to 0.5 rather than falling back.
func parseRational(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	num, den, found := strings.Cut(raw, "/")

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}

	if found {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		value /= d
	}

	return value, true
}

func clampFrameRate(fps float64) float64 {
	if fps < minFrameRate {
		return minFrameRate
	}
	if fps > maxFrameRate {
		return maxFrameRate
	}
	return fps
}
