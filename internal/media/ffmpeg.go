package media

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FFmpegProcessor implements Prober and FrameExtractor using the ffprobe
// and ffmpeg CLIs.
type FFmpegProcessor struct {
	ffmpegPath  string
	ffprobePath string
	runner      Runner
}

// Option configures an FFmpegProcessor.
type Option func(*FFmpegProcessor)

// WithFFmpegPath overrides the ffmpeg binary. Empty keeps the default.
func WithFFmpegPath(path string) Option {
	return func(p *FFmpegProcessor) {
		if path != "" {
			p.ffmpegPath = path
		}
	}
}

// WithFFprobePath overrides the ffprobe binary. Empty keeps the default.
func WithFFprobePath(path string) Option {
	return func(p *FFmpegProcessor) {
		if path != "" {
			p.ffprobePath = path
		}
	}
}

// NewFFmpegProcessor creates a new FFmpegProcessor.
// Binaries default to "ffmpeg" and "ffprobe" (found via PATH).
// If runner is nil, an ExecRunner without a deadline is used.
func NewFFmpegProcessor(runner Runner, opts ...Option) *FFmpegProcessor {
	if runner == nil {
		runner = NewExecRunner(0)
	}
	p := &FFmpegProcessor{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      runner,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Duration returns the duration in seconds of a media file.
// It asks ffprobe for the container duration as bare decimal text.
func (p *FFmpegProcessor) Duration(ctx context.Context, path string) (float64, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: empty media path", ErrInvalidArgument)
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	res, err := p.runner.Run(ctx, p.ffprobePath, args...)
	if err != nil {
		return 0, err
	}
	if res.ExitCode != 0 {
		return 0, &ProcessError{
			Tool:     p.ffprobePath,
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}

	return ParseDuration(string(res.Stdout))
}

// ParseDuration parses ffprobe's bare duration output.
// Anything that is not a finite, non-negative decimal yields ErrParse.
func ParseDuration(out string) (float64, error) {
	text := strings.TrimSpace(out)
	duration, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse duration %q: %w", ErrParse, text, err)
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return 0, fmt.Errorf("%w: duration %q out of range", ErrParse, text)
	}
	return duration, nil
}

// ExtractFrame writes one frame at the given offset, scaled to size.
// The seek is placed before the input so ffmpeg seeks on keyframes
// instead of decoding from the start.
func (p *FFmpegProcessor) ExtractFrame(ctx context.Context, src, dst string, at float64, size Size) error {
	if src == "" || dst == "" {
		return fmt.Errorf("%w: source and destination are required", ErrInvalidArgument)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidArgument, size.Width, size.Height)
	}
	if at < 0 {
		at = 0
	}

	args := []string{
		"-ss", FormatTimestamp(at),
		"-i", src,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", size.Width, size.Height),
		"-y",
		dst,
	}

	return p.runFFmpeg(ctx, args)
}

// FormatTimestamp renders seconds with two decimal places, the precision
// passed to ffmpeg's -ss flag.
func FormatTimestamp(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}

// runFFmpeg executes ffmpeg with the given arguments and returns a
// ProcessError carrying stderr if the command exits nonzero.
func (p *FFmpegProcessor) runFFmpeg(ctx context.Context, args []string) error {
	res, err := p.runner.Run(ctx, p.ffmpegPath, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ProcessError{
			Tool:     p.ffmpegPath,
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}
	return nil
}

// Verify interface implementation at compile time.
var (
	_ Prober         = (*FFmpegProcessor)(nil)
	_ FrameExtractor = (*FFmpegProcessor)(nil)
)
