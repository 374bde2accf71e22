package pipeline

import "errors"

// Error kinds produced by the pipeline. Components wrap these with %w so
// callers can test with errors.Is while still seeing the full diagnostic
// text (tool name, exit code, captured output) in the message.
var (
	// ErrToolNotFound means a required external tool could not be resolved
	// on PATH. It is returned before any execution is attempted.
	ErrToolNotFound = errors.New("required tool not found in PATH")

	// ErrProbeFailed means ffprobe itself failed. A merely unparsable frame
	// rate is not an error; it falls back to the default rate instead.
	ErrProbeFailed = errors.New("frame rate probe failed")

	// ErrExtractionFailed means ffmpeg could not demux the source into frames.
	ErrExtractionFailed = errors.New("frame extraction failed")

	// ErrNoFramesProduced means extraction exited cleanly but wrote no frames.
	ErrNoFramesProduced = errors.New("extraction produced no frames")

	// ErrBackgroundRemoval means the removal capability failed for an image
	// or an individual frame.
	ErrBackgroundRemoval = errors.New("background removal failed")

	// ErrNoFramesToCompose means the processed-frames directory was empty
	// when composition was requested.
	ErrNoFramesToCompose = errors.New("no frames to compose")

	// ErrCompositionFailed means ffmpeg could not mux the processed frames
	// back into a video.
	ErrCompositionFailed = errors.New("video composition failed")
)
