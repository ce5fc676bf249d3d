package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/remeh/sizedwaitgroup"

	"github.com/maauso/clipthumb/internal/media"
	"github.com/maauso/clipthumb/internal/metrics"
	"github.com/maauso/clipthumb/internal/storage"
)

// previewOffset is where the single preview thumbnail is taken, in seconds.
const previewOffset = 1.0

// Temp artifact name prefixes.
const (
	previewPrefix  = "thumb_"
	timelinePrefix = "timeline_thumb_"
)

// Service generates thumbnails by driving a Prober and a FrameExtractor,
// staging every frame in a temporary artifact.
type Service struct {
	prober    media.Prober
	extractor media.FrameExtractor
	store     storage.Storage
	logger    *slog.Logger
	// workers bounds concurrent timeline extractions.
	workers int
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers sets how many timeline frames are extracted concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewService creates a new thumbnail Service.
func NewService(prober media.Prober, extractor media.FrameExtractor, store storage.Storage, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		prober:    prober,
		extractor: extractor,
		store:     store,
		logger:    logger,
		workers:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepArtifacts removes preview and timeline temp files left behind by a
// previous process and returns how many were found.
func (s *Service) SweepArtifacts(ctx context.Context) (int, error) {
	paths, err := s.store.ListTemp(ctx, previewPrefix+"*", timelinePrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("list stale artifacts: %w", err)
	}
	if len(paths) == 0 {
		return 0, nil
	}
	if err := s.store.CleanupTemp(ctx, paths); err != nil {
		return len(paths), fmt.Errorf("remove stale artifacts: %w", err)
	}
	return len(paths), nil
}

// Duration returns the video duration in seconds.
func (s *Service) Duration(ctx context.Context, path string) (float64, error) {
	d, err := s.prober.Duration(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	return d, nil
}

// Preview extracts one frame at previewOffset and returns it as a JPEG
// data URI. Every failure is returned to the caller.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("%w: video path is required", media.ErrInvalidArgument)
	}

	name := fmt.Sprintf("%s%d", previewPrefix, time.Now().UnixNano())
	data, err := s.extract(ctx, req.Path, name, previewOffset, media.PreviewSize)
	if err != nil {
		return nil, fmt.Errorf("generate thumbnail: %w", err)
	}

	res := &PreviewResult{DataURI: media.EncodeDataURI(media.MIMEJPEG, data)}
	metrics.ThumbnailsGeneratedTotal.WithLabelValues(metrics.KindPreview).Inc()

	if req.PushToS3 {
		key := "thumbnails/" + uuid.NewString() + ".jpg"
		url, err := s.store.Upload(ctx, key, media.MIMEJPEG, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("publish thumbnail: %w", err)
		}
		res.URL = url
		s.logger.Info("thumbnail published",
			slog.String("path", req.Path),
			slog.String("url", url),
		)
	}

	return res, nil
}

// Timeline produces req.Count thumbnails evenly spaced across the video.
//
// An invalid request or a failed duration probe fails the whole call before
// any extraction. Individual extraction failures are logged, recorded in
// the returned Frames and skipped.
func (s *Service) Timeline(ctx context.Context, req TimelineRequest) (*TimelineResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("%w: video path is required", media.ErrInvalidArgument)
	}
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: thumbnail count must be at least 1, got %d", media.ErrInvalidArgument, req.Count)
	}

	duration, err := s.prober.Duration(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}

	timestamps, err := Schedule(duration, req.Count)
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, len(timestamps))
	stamp := time.Now().UnixNano()

	// Each goroutine owns frames[i]; no other synchronization is needed.
	wg := sizedwaitgroup.New(s.workers)
	for i, at := range timestamps {
		if ctx.Err() != nil {
			break
		}
		wg.Add()
		go func(i int, at float64) {
			defer wg.Done()
			frames[i] = s.timelineFrame(ctx, req.Path, stamp, i, at)
		}(i, at)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("timeline cancelled: %w", err)
	}

	res := aggregate(duration, frames)

	s.logger.Info("timeline thumbnails generated",
		slog.String("path", req.Path),
		slog.Float64("duration", duration),
		slog.Int("requested", req.Count),
		slog.Int("generated", len(res.Thumbnails)),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}

// timelineFrame extracts and encodes a single timeline frame.
func (s *Service) timelineFrame(ctx context.Context, src string, stamp int64, i int, at float64) Frame {
	frame := Frame{Index: i, Timestamp: at}

	name := fmt.Sprintf("%s%d_%d", timelinePrefix, stamp, i)
	data, err := s.extract(ctx, src, name, at, media.TimelineSize)
	if err != nil {
		frame.Err = err
		s.logger.Warn("timeline frame skipped",
			slog.String("path", src),
			slog.Int("index", i),
			slog.String("timestamp", media.FormatTimestamp(at)),
			slog.String("error", err.Error()),
		)
		return frame
	}

	frame.DataURI = media.EncodeDataURI(media.MIMEJPEG, data)
	return frame
}

// aggregate keeps successful frames in schedule order.
func aggregate(duration float64, frames []Frame) *TimelineResult {
	res := &TimelineResult{
		Duration:   duration,
		Thumbnails: make([]string, 0, len(frames)),
		Frames:     frames,
	}
	for _, f := range frames {
		if !f.OK() {
			res.Skipped++
			continue
		}
		res.Thumbnails = append(res.Thumbnails, f.DataURI)
	}

	metrics.ThumbnailsGeneratedTotal.WithLabelValues(metrics.KindTimeline).Add(float64(len(res.Thumbnails)))
	metrics.ThumbnailsSkippedTotal.Add(float64(res.Skipped))
	return res
}

// extract stages one frame in a temporary artifact and returns its bytes.
// The artifact is released on every return path.
func (s *Service) extract(ctx context.Context, src, name string, at float64, size media.Size) ([]byte, error) {
	art, err := s.store.CreateTemp(ctx, name, ".jpg")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrFilesystem, err)
	}
	defer func() {
		if err := art.Release(); err != nil {
			s.logger.Warn("failed to remove temp frame",
				slog.String("temp_path", art.Path()),
				slog.String("error", err.Error()),
			)
		}
	}()

	if err := s.extractor.ExtractFrame(ctx, src, art.Path(), at, size); err != nil {
		return nil, err
	}

	r, err := s.store.LoadTemp(ctx, art.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrFilesystem, err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read frame: %w", media.ErrFilesystem, err)
	}
	// ffmpeg exits 0 without writing a frame when the seek lands past the end.
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no frame written at %ss", media.ErrParse, media.FormatTimestamp(at))
	}

	return data, nil
}
