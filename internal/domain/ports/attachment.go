package ports

import (
	"context"
	"time"

	"push-attach/internal/domain/model"
)

// ImageFetcher downloads and validates a remote image. Failures are returned
// as *model.FetchError.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (model.Image, error)
}

// AttachmentStager writes an image to a uniquely named local file. The caller
// owns the returned file.
type AttachmentStager interface {
	Stage(ctx context.Context, image model.Image) (model.Attachment, error)
	Discard(attachment model.Attachment) error
}

// Recorder observes resolution outcomes.
type Recorder interface {
	ObserveResolution(reason model.Reason, elapsed time.Duration)
}
