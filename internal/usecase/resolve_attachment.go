package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

const defaultAttachmentTimeout = 8 * time.Second

// Resolution is the final content plus diagnostics about how it was reached.
type Resolution struct {
	Content  model.Content
	Reason   model.Reason
	ImageKey string
	ImageURL string
}

// AttachmentResolver enriches notifications with a remote image on a
// best-effort basis. It never fails: every error degrades to text-only content.
type AttachmentResolver struct {
	fetcher  ports.ImageFetcher
	stager   ports.AttachmentStager
	recorder ports.Recorder
	logger   ports.Logger
	timeout  time.Duration
}

// AttachmentResolverConfig controls the resolver's time budget.
type AttachmentResolverConfig struct {
	Timeout time.Duration
}

// NewAttachmentResolver constructs an AttachmentResolver. recorder may be nil.
func NewAttachmentResolver(
	fetcher ports.ImageFetcher,
	stager ports.AttachmentStager,
	recorder ports.Recorder,
	logger ports.Logger,
	cfg AttachmentResolverConfig,
) *AttachmentResolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAttachmentTimeout
	}
	return &AttachmentResolver{
		fetcher:  fetcher,
		stager:   stager,
		recorder: recorder,
		logger:   logger,
		timeout:  timeout,
	}
}

// Resolve starts resolution and returns immediately. complete is invoked
// exactly once, possibly on another goroutine, no later than the resolver
// timeout or the cancellation of ctx.
func (r *AttachmentResolver) Resolve(ctx context.Context, req model.Request, complete func(Resolution)) {
	start := time.Now()
	var once sync.Once
	finish := func(res Resolution) {
		once.Do(func() {
			r.observe(res.Reason, time.Since(start))
			complete(res)
		})
	}

	base := model.TextOnly(req.Title, req.Body, req.Payload.Priority())

	rawURL, key, ok := req.Payload.ImageURL()
	if !ok {
		r.logger.Debug(ctx, "no image url in payload")
		finish(Resolution{Content: base, Reason: model.ReasonURLAbsent})
		return
	}

	fallback := Resolution{Content: base, ImageKey: key, ImageURL: rawURL}

	imageURL, err := parseImageURL(rawURL)
	if err != nil {
		r.logger.Warn(ctx, "ignoring malformed image url", "key", key, "url", rawURL, "error", err)
		fallback.Reason = model.ReasonURLMalformed
		finish(fallback)
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	results := make(chan Resolution, 1)

	go func() {
		results <- r.attach(fetchCtx, base, fallback, imageURL)
	}()

	go func() {
		defer cancel()
		select {
		case res := <-results:
			finish(res)
		case <-fetchCtx.Done():
			r.logger.Warn(ctx, "image attachment abandoned", "key", key, "url", imageURL, "error", fetchCtx.Err())
			abandoned := fallback
			abandoned.Reason = model.ReasonTimeout
			finish(abandoned)
			r.discardLate(ctx, <-results)
		}
	}()
}

// ResolveWait blocks until Resolve completes.
func (r *AttachmentResolver) ResolveWait(ctx context.Context, req model.Request) Resolution {
	done := make(chan Resolution, 1)
	r.Resolve(ctx, req, func(res Resolution) {
		done <- res
	})
	return <-done
}

func (r *AttachmentResolver) attach(ctx context.Context, base model.Content, fallback Resolution, imageURL string) (res Resolution) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error(ctx, "image attachment panicked", "url", imageURL, "panic", fmt.Sprint(recovered))
			res = fallback
			res.Reason = model.ReasonPanic
		}
	}()

	image, err := r.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return r.fail(ctx, fallback, imageURL, err)
	}

	attachment, err := r.stager.Stage(ctx, image)
	if err != nil {
		return r.fail(ctx, fallback, imageURL, model.NewFetchError(model.ReasonStaging, err))
	}

	r.logger.Info(ctx, "image attached",
		"key", fallback.ImageKey,
		"url", imageURL,
		"content_type", attachment.ContentType,
		"bytes", attachment.Size,
	)

	return Resolution{
		Content:  base.WithImage(attachment),
		Reason:   model.ReasonAttached,
		ImageKey: fallback.ImageKey,
		ImageURL: fallback.ImageURL,
	}
}

// discardLate removes a file staged after the deadline fired. It was never
// handed off, so the resolver still owns it.
func (r *AttachmentResolver) discardLate(ctx context.Context, late Resolution) {
	if late.Content.Image == nil {
		return
	}
	if err := r.stager.Discard(*late.Content.Image); err != nil {
		r.logger.Warn(ctx, "failed to discard late attachment", "path", late.Content.Image.Path, "error", err)
	}
}

func (r *AttachmentResolver) fail(ctx context.Context, fallback Resolution, imageURL string, err error) Resolution {
	reason := model.ReasonOf(err)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		reason = model.ReasonTimeout
	}
	r.logger.Warn(ctx, "image attachment failed, sending text only", "url", imageURL, "reason", reason, "error", err)
	fallback.Reason = reason
	return fallback
}

func (r *AttachmentResolver) observe(reason model.Reason, elapsed time.Duration) {
	if r.recorder == nil {
		return
	}
	r.recorder.ObserveResolution(reason, elapsed)
}

func parseImageURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("missing host")
	}
	return parsed.String(), nil
}
