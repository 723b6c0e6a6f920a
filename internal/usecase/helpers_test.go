package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"push-attach/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fetchFunc func(ctx context.Context, rawURL string) (model.Image, error)

type fakeFetcher struct {
	calls atomic.Int32
	fn    fetchFunc
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (model.Image, error) {
	f.calls.Add(1)
	return f.fn(ctx, rawURL)
}

type fakeStager struct {
	mu        sync.Mutex
	staged    []model.Attachment
	discarded []model.Attachment
	err       error
}

func (s *fakeStager) Stage(_ context.Context, img model.Image) (model.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.Attachment{}, s.err
	}
	attachment := model.Attachment{
		Path:        "/staged/" + time.Now().Format("150405.000000000") + img.Extension,
		ContentType: img.ContentType,
		Extension:   img.Extension,
		Size:        int64(len(img.Data)),
	}
	s.staged = append(s.staged, attachment)
	return attachment, nil
}

func (s *fakeStager) Discard(attachment model.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = append(s.discarded, attachment)
	return nil
}

func (s *fakeStager) discardedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.discarded)
}

type fakeRecorder struct {
	mu      sync.Mutex
	reasons []model.Reason
}

func (r *fakeRecorder) ObserveResolution(reason model.Reason, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *fakeRecorder) snapshot() []model.Reason {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Reason(nil), r.reasons...)
}

func okImage(data []byte) fetchFunc {
	return func(_ context.Context, rawURL string) (model.Image, error) {
		return model.Image{SourceURL: rawURL, Data: data, ContentType: "image/png", Extension: ".png", Width: 10, Height: 10}, nil
	}
}

var errBoom = errors.New("boom")
