package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/clipthumb/internal/library"
	"github.com/maauso/clipthumb/internal/media"
	"github.com/maauso/clipthumb/internal/storage"
	"github.com/maauso/clipthumb/internal/thumbnail"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service   *thumbnail.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *thumbnail.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Duration handles POST /media/duration requests.
func (h *Handlers) Duration(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !h.decode(w, r, &req) {
		return
	}

	d, err := h.service.Duration(r.Context(), req.Path)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DurationResponse{Duration: d})
}

// Thumbnail handles POST /media/thumbnail requests.
func (h *Handlers) Thumbnail(w http.ResponseWriter, r *http.Request) {
	var req ThumbnailRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Preview(r.Context(), thumbnail.PreviewRequest{
		Path:     req.Path,
		PushToS3: req.PushToS3,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ThumbnailResponse{DataURI: res.DataURI, URL: res.URL})
}

// Timeline handles POST /media/timeline requests.
func (h *Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Timeline(r.Context(), thumbnail.TimelineRequest{
		Path:  req.Path,
		Count: req.Count,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TimelineResponse{
		Duration:   res.Duration,
		Thumbnails: res.Thumbnails,
		Skipped:    res.Skipped,
	})
}

// ReadImage handles POST /images/read requests.
func (h *Handlers) ReadImage(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !h.decode(w, r, &req) {
		return
	}

	uri, err := library.ReadImage(req.Path)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImageResponse{DataURI: uri})
}

// Exclude handles POST /files/exclude requests.
func (h *Handlers) Exclude(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !h.decode(w, r, &req) {
		return
	}

	dst, err := library.Exclude(req.Path)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("file excluded",
		slog.String("from", req.Path),
		slog.String("to", dst),
	)

	writeJSON(w, http.StatusOK, ExcludeResponse{Path: dst})
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT")
		return false
	}

	return true
}

// fail maps a command error onto an HTTP status and error code.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	attrs := []any{
		slog.String("path", r.URL.Path),
		slog.String("code", code),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("command failed", attrs...)
	} else {
		h.logger.Warn("command rejected", attrs...)
	}

	writeError(w, status, err.Error(), code)
}

// classify returns the HTTP status and error code for err.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, media.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, media.ErrProcessLaunch):
		return http.StatusServiceUnavailable, "PROCESS_LAUNCH_FAILED"
	case errors.Is(err, media.ErrProcessTimeout):
		return http.StatusGatewayTimeout, "PROCESS_TIMEOUT"
	case errors.Is(err, media.ErrProcessExit):
		return http.StatusBadGateway, "PROCESS_EXIT_FAILED"
	case errors.Is(err, media.ErrParse):
		return http.StatusBadGateway, "PARSE_FAILED"
	case errors.Is(err, storage.ErrS3NotConfigured):
		return http.StatusConflict, "S3_NOT_CONFIGURED"
	case errors.Is(err, media.ErrFilesystem) && errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, "FILESYSTEM_FAILURE"
	case errors.Is(err, media.ErrFilesystem):
		return http.StatusInternalServerError, "FILESYSTEM_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
