package httpfetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

const (
	defaultMaxBytes  = 5 * 1024 * 1024
	defaultUserAgent = "push-attach/1.0"

	// MaxPixels bounds width*height before a full decode is attempted.
	MaxPixels = 24 * 1024 * 1024
)

// Fetcher implements ImageFetcher with a single bounded HTTP GET.
type Fetcher struct {
	httpClient *http.Client
	logger     ports.Logger
	maxBytes   int64
	userAgent  string
}

var _ ports.ImageFetcher = (*Fetcher)(nil)

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Client    *http.Client
}

// New creates a new Fetcher.
func New(opts Options, logger ports.Logger) *Fetcher {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{
		httpClient: client,
		logger:     logger,
		maxBytes:   maxBytes,
		userAgent:  userAgent,
	}
}

// Fetch downloads rawURL and checks that it decodes as an image.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (model.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return model.Image{}, model.NewFetchError(model.ReasonURLMalformed, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return model.Image{}, model.NewFetchError(classifyTransportError(err), fmt.Errorf("perform request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return model.Image{}, model.NewFetchError(model.ReasonBadStatus, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if resp.ContentLength > f.maxBytes {
		return model.Image{}, model.NewFetchError(model.ReasonTooLarge, fmt.Errorf("content length %d exceeds %d bytes", resp.ContentLength, f.maxBytes))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return model.Image{}, model.NewFetchError(classifyTransportError(err), fmt.Errorf("read body: %w", err))
	}
	if int64(len(data)) > f.maxBytes {
		return model.Image{}, model.NewFetchError(model.ReasonTooLarge, fmt.Errorf("body exceeds %d bytes", f.maxBytes))
	}

	img, err := Inspect(data, rawURL)
	if err != nil {
		return model.Image{}, err
	}

	f.logger.Debug(ctx, "image fetched",
		"url", rawURL,
		"content_type", img.ContentType,
		"bytes", len(data),
		"width", img.Width,
		"height", img.Height,
	)
	return img, nil
}

// Inspect sniffs data and verifies that it decodes as a supported image.
func Inspect(data []byte, sourceURL string) (model.Image, error) {
	if len(data) == 0 {
		return model.Image{}, model.NewFetchError(model.ReasonNotImage, errors.New("empty body"))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return model.Image{}, model.NewFetchError(model.ReasonNotImage, fmt.Errorf("detected %s", mtype.String()))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Image{}, model.NewFetchError(model.ReasonDecode, fmt.Errorf("decode %s header: %w", mtype.String(), err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return model.Image{}, model.NewFetchError(model.ReasonDecode, fmt.Errorf("invalid %s dimensions %dx%d", format, cfg.Width, cfg.Height))
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return model.Image{}, model.NewFetchError(model.ReasonTooLarge, fmt.Errorf("%s is %dx%d, over %d pixels", format, cfg.Width, cfg.Height, MaxPixels))
	}

	// DecodeConfig stops after the header; pixel data is only checked by a full decode.
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return model.Image{}, model.NewFetchError(model.ReasonDecode, fmt.Errorf("decode %s: %w", format, err))
	}

	return model.Image{
		SourceURL:   sourceURL,
		Data:        data,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func classifyTransportError(err error) model.Reason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return model.ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.ReasonTimeout
	}
	return model.ReasonNetwork
}
