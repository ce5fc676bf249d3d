// Package server provides the HTTP boundary for the thumbnail commands.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

// PathRequest is the HTTP request body for commands taking a single path.
type PathRequest struct {
	// Path is an absolute or working-directory-relative file path.
	Path string `json:"path" validate:"required"`
}

// ThumbnailRequest is the HTTP request body for a single preview thumbnail.
type ThumbnailRequest struct {
	Path string `json:"path" validate:"required"`
	// PushToS3 indicates whether to also publish the thumbnail to S3.
	PushToS3 bool `json:"push_to_s3"`
}

// TimelineRequest is the HTTP request body for timeline thumbnails.
type TimelineRequest struct {
	Path string `json:"path" validate:"required"`
	// Count is the number of evenly spaced thumbnails to generate.
	Count int `json:"count" validate:"required,min=1,max=500"`
}

// DurationResponse carries a video duration in seconds.
type DurationResponse struct {
	Duration float64 `json:"duration"`
}

// ThumbnailResponse carries a single preview thumbnail.
type ThumbnailResponse struct {
	// DataURI is the thumbnail as an inline data URI.
	DataURI string `json:"data_uri"`
	// URL is the S3 URL of the thumbnail (if push_to_s3=true).
	URL string `json:"url,omitempty"`
}

// TimelineResponse carries timeline thumbnails in timestamp order.
type TimelineResponse struct {
	Duration   float64  `json:"duration"`
	Thumbnails []string `json:"thumbnails"`
	// Skipped is the number of frames that could not be generated.
	Skipped int `json:"skipped"`
}

// ImageResponse carries an image file as a data URI.
type ImageResponse struct {
	DataURI string `json:"data_uri"`
}

// ExcludeResponse carries the new location of an excluded file.
type ExcludeResponse struct {
	Path string `json:"path"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
