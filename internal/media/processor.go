// Package media wraps the ffprobe and ffmpeg command-line tools and the
// data URI encoding used to hand images to a rendering surface.
package media

import "context"

// Size is a target frame resolution in pixels.
type Size struct {
	Width  int
	Height int
}

var (
	// PreviewSize is the resolution of a single preview thumbnail.
	PreviewSize = Size{Width: 160, Height: 90}
	// TimelineSize is the resolution of each timeline thumbnail.
	TimelineSize = Size{Width: 80, Height: 45}
)

// Prober reports container-level metadata for a media file.
type Prober interface {
	// Duration returns the container duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}

// FrameExtractor writes single frames out of a video.
type FrameExtractor interface {
	// ExtractFrame seeks to at seconds in src and writes exactly one frame,
	// scaled to size, to dst. dst is overwritten if it exists.
	ExtractFrame(ctx context.Context, src, dst string, at float64, size Size) error
}
