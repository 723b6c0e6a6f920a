package staging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
	partial  = ".partial"
)

// Dir stages images as uniquely named files inside a single directory.
type Dir struct {
	root   string
	logger ports.Logger
}

var _ ports.AttachmentStager = (*Dir)(nil)

// NewDir creates the staging directory if needed.
func NewDir(root string, logger ports.Logger) (*Dir, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("staging directory is empty")
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &Dir{root: root, logger: logger}, nil
}

// Root returns the staging directory.
func (d *Dir) Root() string {
	return d.root
}

// Stage writes the image under <root>/<uuid><ext>. The file is written to a
// partial name first so the janitor and readers never observe half a file.
func (d *Dir) Stage(ctx context.Context, image model.Image) (model.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return model.Attachment{}, err
	}

	ext := image.Extension
	if ext == "" {
		ext = ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := uuid.NewString() + ext
	final := filepath.Join(d.root, name)
	tmp := final + partial

	if err := os.WriteFile(tmp, image.Data, filePerm); err != nil {
		_ = os.Remove(tmp)
		return model.Attachment{}, fmt.Errorf("write staged file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return model.Attachment{}, fmt.Errorf("rename staged file: %w", err)
	}

	sum := sha256.Sum256(image.Data)
	d.logger.Debug(ctx, "attachment staged", "path", final, "bytes", len(image.Data))

	return model.Attachment{
		Path:        final,
		ContentType: image.ContentType,
		Extension:   ext,
		Size:        int64(len(image.Data)),
		Width:       image.Width,
		Height:      image.Height,
		Digest:      hex.EncodeToString(sum[:]),
	}, nil
}

// Discard removes a staged file that was never handed off.
func (d *Dir) Discard(attachment model.Attachment) error {
	if attachment.Path == "" {
		return nil
	}
	if filepath.Dir(attachment.Path) != filepath.Clean(d.root) {
		return fmt.Errorf("attachment %s is outside the staging directory", attachment.Path)
	}
	if err := os.Remove(attachment.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}
