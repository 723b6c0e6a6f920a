package usecase

import (
	"context"
	"time"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

// Receipt summarises one delivery for the caller.
type Receipt struct {
	Content   model.Content `json:"content"`
	Reason    model.Reason  `json:"reason"`
	ImageKey  string        `json:"image_key,omitempty"`
	ImageURL  string        `json:"image_url,omitempty"`
	Presented bool          `json:"presented"`
	Error     string        `json:"error,omitempty"`

	Failures []model.PresenterFailure `json:"failures,omitempty"`
}

// Delivery resolves an incoming notification and hands it to the presenter.
type Delivery struct {
	resolver  *AttachmentResolver
	presenter ports.Presenter
	logger    ports.Logger
}

// NewDelivery constructs a Delivery use case.
func NewDelivery(resolver *AttachmentResolver, presenter ports.Presenter, logger ports.Logger) *Delivery {
	return &Delivery{
		resolver:  resolver,
		presenter: presenter,
		logger:    logger,
	}
}

// Deliver runs the delivery workflow. Resolution never fails; the returned
// error only reports that no presenter showed the notification. Presenters
// that failed alongside a successful one are listed in Receipt.Failures.
func (d *Delivery) Deliver(ctx context.Context, req model.Request) (Receipt, error) {
	start := time.Now()
	resolution := d.resolver.ResolveWait(ctx, req)

	receipt := Receipt{
		Content:  resolution.Content,
		Reason:   resolution.Reason,
		ImageKey: resolution.ImageKey,
		ImageURL: resolution.ImageURL,
	}

	if err := d.presenter.Present(ctx, resolution.Content); err != nil {
		failures, partial := model.PresenterFailures(err)
		receipt.Failures = failures
		receipt.Error = err.Error()
		if !partial {
			d.logger.Error(ctx, "failed to present notification", "error", err)
			return receipt, err
		}
		d.logger.Warn(ctx, "notification partially presented", "error", err)
	}

	receipt.Presented = true
	d.logger.Info(ctx, "notification delivered",
		"reason", resolution.Reason,
		"has_image", resolution.Content.HasImage(),
		"duration", time.Since(start),
	)
	return receipt, nil
}
