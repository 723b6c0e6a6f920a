package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
)

var priorityColors = map[model.Priority]int{
	model.PriorityMin:     0x99AAB5,
	model.PriorityLow:     0x99AAB5,
	model.PriorityDefault: 0x5865F2, // Discord blurple
	model.PriorityHigh:    0xFEE75C,
	model.PriorityMax:     0xED4245,
}

// Webhook presents notifications through a Discord webhook.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Presenter = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook presenter.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name identifies the presenter in delivery receipts.
func (w *Webhook) Name() string {
	return "discord"
}

// Present posts the notification to Discord. When an image is attached it is
// uploaded alongside the embed and referenced from it.
func (w *Webhook) Present(ctx context.Context, content model.Content) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	embed := map[string]any{
		"title":       truncate(content.Title, 256),
		"description": truncate(htmlToText(content.Body), 4096),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"color":       colorFor(content.Priority),
	}

	var (
		body        io.Reader
		contentType string
		err         error
	)

	if content.Image != nil {
		name := filepath.Base(content.Image.Path)
		embed["image"] = map[string]string{"url": "attachment://" + name}
		embed["thumbnail"] = map[string]string{"url": "attachment://" + name}
		body, contentType, err = multipartBody(embed, content.Image)
	} else {
		body, contentType, err = jsonBody(embed)
	}
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info(ctx, "notification sent to discord", "has_image", content.HasImage())
	return nil
}

func jsonBody(embed map[string]any) (io.Reader, string, error) {
	payload, err := json.Marshal(map[string]any{
		"embeds": []map[string]any{embed},
	})
	if err != nil {
		return nil, "", fmt.Errorf("marshal payload: %w", err)
	}
	return bytes.NewReader(payload), "application/json", nil
}

func multipartBody(embed map[string]any, attachment *model.Attachment) (io.Reader, string, error) {
	name := filepath.Base(attachment.Path)
	payload, err := json.Marshal(map[string]any{
		"embeds": []map[string]any{embed},
		"attachments": []map[string]any{
			{"id": 0, "filename": name},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("marshal payload: %w", err)
	}

	file, err := os.Open(attachment.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open attachment: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("payload_json", string(payload)); err != nil {
		return nil, "", fmt.Errorf("write payload field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename=%q`, name))
	header.Set("Content-Type", attachment.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy attachment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

func colorFor(priority model.Priority) int {
	if color, ok := priorityColors[priority]; ok {
		return color
	}
	return priorityColors[model.PriorityDefault]
}

// truncate shortens value to at most limit characters, counted in runes as
// Discord counts them.
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
