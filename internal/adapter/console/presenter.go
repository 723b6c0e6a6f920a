package console

import (
	"context"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

// Presenter writes the final notification to the structured log.
type Presenter struct {
	logger ports.Logger
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a log-backed presenter.
func NewPresenter(logger ports.Logger) *Presenter {
	return &Presenter{logger: logger}
}

// Name identifies the presenter in delivery receipts.
func (p *Presenter) Name() string {
	return "console"
}

// Present logs the notification. It never fails.
func (p *Presenter) Present(ctx context.Context, content model.Content) error {
	args := []any{
		"title", content.Title,
		"body", content.Body,
		"priority", content.Priority,
		"style", content.Style,
	}
	if content.Image != nil {
		args = append(args,
			"image_path", content.Image.Path,
			"image_type", content.Image.ContentType,
			"image_width", content.Image.Width,
			"image_height", content.Image.Height,
		)
	}
	p.logger.Info(ctx, "notification presented", args...)
	return nil
}
