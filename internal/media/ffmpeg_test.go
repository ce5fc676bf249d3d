package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRunner implements Runner for testing.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	ret := m.Called(ctx, name, args)
	return ret.Get(0).(Result), ret.Error(1)
}

// skipIfNoFFmpeg skips the test if ffmpeg or ffprobe is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH, skipping test", bin)
		}
	}
}

// createTestVideo creates a simple test video using ffmpeg.
func createTestVideo(t *testing.T, path string, duration float64) {
	t.Helper()

	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=blue:s=320x180:d=%.1f", duration),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test video: %v\noutput: %s", err, output)
	}
}

func TestNewFFmpegProcessor(t *testing.T) {
	t.Run("default paths", func(t *testing.T) {
		p := NewFFmpegProcessor(nil)
		assert.Equal(t, "ffmpeg", p.ffmpegPath)
		assert.Equal(t, "ffprobe", p.ffprobePath)
		assert.NotNil(t, p.runner)
	})

	t.Run("custom paths", func(t *testing.T) {
		p := NewFFmpegProcessor(nil,
			WithFFmpegPath("/usr/local/bin/ffmpeg"),
			WithFFprobePath("/usr/local/bin/ffprobe"),
		)
		assert.Equal(t, "/usr/local/bin/ffmpeg", p.ffmpegPath)
		assert.Equal(t, "/usr/local/bin/ffprobe", p.ffprobePath)
	})

	t.Run("empty override keeps default", func(t *testing.T) {
		p := NewFFmpegProcessor(nil, WithFFmpegPath(""))
		assert.Equal(t, "ffmpeg", p.ffmpegPath)
	})
}

func TestDuration(t *testing.T) {
	ctx := context.Background()
	probeArgs := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"/videos/a.mp4",
	}

	t.Run("parses stdout", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffprobe", probeArgs).
			Return(Result{Stdout: []byte("12.345000\n")}, nil)

		d, err := NewFFmpegProcessor(r).Duration(ctx, "/videos/a.mp4")
		require.NoError(t, err)
		assert.InDelta(t, 12.345, d, 1e-9)
		r.AssertExpectations(t)
	})

	t.Run("launch failure", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffprobe", probeArgs).
			Return(Result{}, fmt.Errorf("%w: ffprobe: not found", ErrProcessLaunch))

		_, err := NewFFmpegProcessor(r).Duration(ctx, "/videos/a.mp4")
		assert.ErrorIs(t, err, ErrProcessLaunch)
	})

	t.Run("nonzero exit carries stderr", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffprobe", probeArgs).
			Return(Result{ExitCode: 1, Stderr: []byte("No such file or directory")}, nil)

		_, err := NewFFmpegProcessor(r).Duration(ctx, "/videos/a.mp4")
		require.ErrorIs(t, err, ErrProcessExit)

		var perr *ProcessError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 1, perr.ExitCode)
		assert.Contains(t, err.Error(), "No such file or directory")
	})

	t.Run("unparseable output", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffprobe", probeArgs).
			Return(Result{Stdout: []byte("N/A\n")}, nil)

		_, err := NewFFmpegProcessor(r).Duration(ctx, "/videos/a.mp4")
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("empty path never runs the tool", func(t *testing.T) {
		r := &mockRunner{}

		_, err := NewFFmpegProcessor(r).Duration(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
		r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"10.5", 10.5, false},
		{"  3600.000000\n", 3600, false},
		{"", 0, true},
		{"N/A", 0, true},
		{"-1.0", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"12.5\n13.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFrame(t *testing.T) {
	ctx := context.Background()

	t.Run("builds ffmpeg arguments", func(t *testing.T) {
		r := &mockRunner{}
		want := []string{
			"-ss", "2.50",
			"-i", "/videos/a.mp4",
			"-vframes", "1",
			"-vf", "scale=80:45",
			"-y",
			"/tmp/out.jpg",
		}
		r.On("Run", ctx, "ffmpeg", want).Return(Result{}, nil)

		err := NewFFmpegProcessor(r).ExtractFrame(ctx, "/videos/a.mp4", "/tmp/out.jpg", 2.5, TimelineSize)
		require.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("nonzero exit is a ProcessError", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffmpeg", mock.Anything).
			Return(Result{ExitCode: 1, Stderr: []byte("Invalid data found")}, nil)

		err := NewFFmpegProcessor(r).ExtractFrame(ctx, "/videos/a.mp4", "/tmp/out.jpg", 0, PreviewSize)
		require.Error(t, err)

		var perr *ProcessError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "ffmpeg", perr.Tool)
		assert.Contains(t, perr.Stderr, "Invalid data found")
	})

	t.Run("invalid size", func(t *testing.T) {
		r := &mockRunner{}
		for _, size := range []Size{{0, 45}, {80, 0}, {-1, 45}} {
			err := NewFFmpegProcessor(r).ExtractFrame(ctx, "/videos/a.mp4", "/tmp/out.jpg", 0, size)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}
		r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative offset clamps to zero", func(t *testing.T) {
		r := &mockRunner{}
		r.On("Run", ctx, "ffmpeg", mock.MatchedBy(func(args []string) bool {
			return len(args) > 1 && args[0] == "-ss" && args[1] == "0.00"
		})).Return(Result{}, nil)

		err := NewFFmpegProcessor(r).ExtractFrame(ctx, "/videos/a.mp4", "/tmp/out.jpg", -3, TimelineSize)
		require.NoError(t, err)
		r.AssertExpectations(t)
	})
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "0.00", FormatTimestamp(0))
	assert.Equal(t, "1.00", FormatTimestamp(1))
	assert.Equal(t, "3.33", FormatTimestamp(10.0/3))
	assert.Equal(t, "59.99", FormatTimestamp(59.994))
}

func TestFFmpegProcessor_RealTools(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmpDir := t.TempDir()
	video := filepath.Join(tmpDir, "input.mp4")
	createTestVideo(t, video, 2.0)

	p := NewFFmpegProcessor(NewExecRunner(0))
	ctx := context.Background()

	d, err := p.Duration(ctx, video)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 0.2)

	out := filepath.Join(tmpDir, "frame.jpg")
	require.NoError(t, p.ExtractFrame(ctx, video, out, 1.0, TimelineSize))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = p.Duration(ctx, filepath.Join(tmpDir, "missing.mp4"))
	assert.ErrorIs(t, err, ErrProcessExit)
}

func TestFFmpegProcessor_Duration_StalledProbeTimesOut(t *testing.T) {
	lookPathOrSkip(t, "sh")
	lookPathOrSkip(t, "sleep")

	script := filepath.Join(t.TempDir(), "ffprobe")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 5\n"), 0700)) // #nosec G306

	p := NewFFmpegProcessor(NewExecRunner(100*time.Millisecond), WithFFprobePath(script))

	start := time.Now()
	_, err := p.Duration(context.Background(), "/videos/a.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessTimeout)
	assert.NotErrorIs(t, err, ErrProcessExit)
	assert.Less(t, time.Since(start), 4*time.Second)
}
