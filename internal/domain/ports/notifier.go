package ports

import (
	"context"

	"push-attach/internal/domain/model"
)

// Presenter hands final content to a display layer (e.g. Discord, the log).
// A presenter takes ownership of content.Image once Present is called.
type Presenter interface {
	Present(ctx context.Context, content model.Content) error
}
