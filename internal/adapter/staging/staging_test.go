package staging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"push-attach/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func TestStageWritesUniqueFiles(t *testing.T) {
	dir, err := NewDir(filepath.Join(t.TempDir(), "nested", "staging"), nopLogger{})
	require.NoError(t, err)

	img := model.Image{Data: []byte("image-bytes"), ContentType: "image/png", Extension: ".png", Width: 2, Height: 3}

	first, err := dir.Stage(context.Background(), img)
	require.NoError(t, err)
	second, err := dir.Stage(context.Background(), img)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, first.Digest, second.Digest)
	assert.True(t, strings.HasSuffix(first.Path, ".png"))
	assert.Equal(t, int64(len(img.Data)), first.Size)
	assert.Equal(t, 2, first.Width)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)

	entries, err := os.ReadDir(dir.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStageDefaultsExtension(t *testing.T) {
	dir, err := NewDir(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	attachment, err := dir.Stage(context.Background(), model.Image{Data: []byte("x"), Extension: "webp"})
	require.NoError(t, err)
	assert.Equal(t, ".webp", filepath.Ext(attachment.Path))

	attachment, err = dir.Stage(context.Background(), model.Image{Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(attachment.Path))
}

func TestStageFailsOnCancelledContextOrMissingDir(t *testing.T) {
	dir, err := NewDir(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dir.Stage(ctx, model.Image{Data: []byte("x")})
	assert.Error(t, err)

	require.NoError(t, os.RemoveAll(dir.Root()))
	_, err = dir.Stage(context.Background(), model.Image{Data: []byte("x")})
	assert.Error(t, err)
}

func TestNewDirRejectsEmptyPath(t *testing.T) {
	_, err := NewDir(" ", nopLogger{})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	dir, err := NewDir(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	attachment, err := dir.Stage(context.Background(), model.Image{Data: []byte("x"), Extension: ".png"})
	require.NoError(t, err)

	require.NoError(t, dir.Discard(attachment))
	_, err = os.Stat(attachment.Path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, dir.Discard(attachment))
	assert.Error(t, dir.Discard(model.Attachment{Path: "/etc/passwd"}))
}

func TestJanitorSweepsOnlyStaleFiles(t *testing.T) {
	dir, err := NewDir(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	stale, err := dir.Stage(context.Background(), model.Image{Data: []byte("old"), Extension: ".png"})
	require.NoError(t, err)
	fresh, err := dir.Stage(context.Background(), model.Image{Data: []byte("new"), Extension: ".png"})
	require.NoError(t, err)

	now := time.Now()
	old := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale.Path, old, old))
	require.NoError(t, os.Mkdir(filepath.Join(dir.Root(), "subdir"), 0o700))

	janitor := NewJanitor(dir, time.Hour, nopLogger{})
	removed, err := janitor.Sweep(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = os.Stat(stale.Path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh.Path)
	assert.NoError(t, err)
}
