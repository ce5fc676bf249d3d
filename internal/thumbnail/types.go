// Package thumbnail generates preview and timeline thumbnails for videos.
//
// A timeline request is fail-fast on the duration probe and fail-soft on
// each frame: a frame that cannot be extracted or read is dropped from the
// result and reported in TimelineResult.Frames and Skipped.
package thumbnail

// TimelineRequest asks for Count evenly spaced thumbnails of the video at Path.
type TimelineRequest struct {
	Path  string
	Count int
}

// Frame is the outcome of one timeline extraction.
type Frame struct {
	// Index is the position in the schedule, starting at 0.
	Index int
	// Timestamp is the seek offset in seconds.
	Timestamp float64
	// DataURI holds the encoded JPEG when Err is nil.
	DataURI string
	// Err is the per-frame failure, if any.
	Err error
}

// OK reports whether the frame produced an image.
func (f Frame) OK() bool {
	return f.Err == nil
}

// TimelineResult is the aggregated output of a timeline request.
type TimelineResult struct {
	// Duration is the probed video duration in seconds.
	Duration float64
	// Thumbnails holds the successful data URIs in timestamp order.
	Thumbnails []string
	// Frames holds every attempt, successful or not, in timestamp order.
	Frames []Frame
	// Skipped is the number of frames that failed.
	Skipped int
}

// PreviewRequest asks for a single preview thumbnail.
type PreviewRequest struct {
	Path string
	// PushToS3 additionally publishes the JPEG and returns its URL.
	PushToS3 bool
}

// PreviewResult is a generated preview thumbnail.
type PreviewResult struct {
	DataURI string
	// URL is set when the thumbnail was published.
	URL string
}
