package presenters

import (
	"context"
	"fmt"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

type named interface {
	Name() string
}

// Fanout presents each notification through several presenters in order.
type Fanout struct {
	logger     ports.Logger
	presenters []ports.Presenter
}

var _ ports.Presenter = (*Fanout)(nil)

// NewFanout constructs a presenter that calls the given presenters sequentially.
// Nil presenters are skipped.
func NewFanout(logger ports.Logger, presenters ...ports.Presenter) *Fanout {
	active := make([]ports.Presenter, 0, len(presenters))
	for _, p := range presenters {
		if p != nil {
			active = append(active, p)
		}
	}
	return &Fanout{
		logger:     logger,
		presenters: active,
	}
}

// Present calls every presenter. Any failure is reported as a
// *model.PresentError; it is partial when some presenter still succeeded.
func (f *Fanout) Present(ctx context.Context, content model.Content) error {
	if len(f.presenters) == 0 {
		return fmt.Errorf("no presenters configured")
	}

	var (
		names []string
		errs  []error
	)
	for i, presenter := range f.presenters {
		if err := presenter.Present(ctx, content); err != nil {
			name := nameOf(presenter, i)
			names = append(names, name)
			errs = append(errs, err)
			if f.logger != nil {
				f.logger.Error(ctx, "presenter failed", "presenter", name, "error", err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return model.NewPresentError(names, errs, len(f.presenters)-len(errs))
}

func nameOf(presenter ports.Presenter, index int) string {
	if n, ok := presenter.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("presenter-%d", index)
}
