package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURLKeyPriority(t *testing.T) {
	full := Payload{
		"attachment-url":         "https://x/attachment-url.png",
		"image_url":              "https://x/image_url.png",
		"image-url":              "https://x/image-url.png",
		"gcm.notification.image": "https://x/gcm.png",
		"image":                  "https://x/image.png",
		"fcm_options":            map[string]any{"image": "https://x/fcm.png"},
	}

	order := []struct {
		drop    string
		wantKey string
		wantURL string
	}{
		{drop: "", wantKey: "fcm_options.image", wantURL: "https://x/fcm.png"},
		{drop: "fcm_options", wantKey: "image", wantURL: "https://x/image.png"},
		{drop: "image", wantKey: "gcm.notification.image", wantURL: "https://x/gcm.png"},
		{drop: "gcm.notification.image", wantKey: "image-url", wantURL: "https://x/image-url.png"},
		{drop: "image-url", wantKey: "image_url", wantURL: "https://x/image_url.png"},
		{drop: "image_url", wantKey: "attachment-url", wantURL: "https://x/attachment-url.png"},
	}

	payload := Payload{}
	for k, v := range full {
		payload[k] = v
	}

	for _, step := range order {
		if step.drop != "" {
			delete(payload, step.drop)
		}
		url, key, ok := payload.ImageURL()
		assert.True(t, ok, step.wantKey)
		assert.Equal(t, step.wantKey, key)
		assert.Equal(t, step.wantURL, url)
	}

	delete(payload, "attachment-url")
	_, _, ok := payload.ImageURL()
	assert.False(t, ok)
}

func TestImageURLSkipsEmptyAndNonStringValues(t *testing.T) {
	payload := Payload{
		"fcm_options":            map[string]any{"image": ""},
		"image":                  42,
		"gcm.notification.image": "  https://x/gcm.png  ",
	}

	url, key, ok := payload.ImageURL()
	assert.True(t, ok)
	assert.Equal(t, "gcm.notification.image", key)
	assert.Equal(t, "https://x/gcm.png", url)
}

func TestImageURLNestedOptionShapes(t *testing.T) {
	shapes := map[string]any{
		"map any":    map[string]any{"image": "https://x/a.png"},
		"map string": map[string]string{"image": "https://x/a.png"},
		"payload":    Payload{"image": "https://x/a.png"},
		"json text":  `{"image":"https://x/a.png"}`,
	}

	for name, options := range shapes {
		t.Run(name, func(t *testing.T) {
			url, key, ok := Payload{"fcm_options": options}.ImageURL()
			assert.True(t, ok)
			assert.Equal(t, "fcm_options.image", key)
			assert.Equal(t, "https://x/a.png", url)
		})
	}
}

func TestImageURLIsDeterministic(t *testing.T) {
	payload := Payload{"image": "https://x/a.png", "image_url": "https://x/b.png"}
	for i := 0; i < 100; i++ {
		url, _, _ := payload.ImageURL()
		assert.Equal(t, "https://x/a.png", url)
	}
}

func TestPriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, Payload{}.Priority())
	assert.Equal(t, PriorityDefault, Payload{"priority": "normal"}.Priority())
	assert.Equal(t, PriorityMax, Payload{"priority": "MAX"}.Priority())
	assert.Equal(t, PriorityHigh, Payload{"priority": "urgent"}.Priority())
	assert.Equal(t, PriorityHigh, Payload{"priority": 5}.Priority())
}

func TestContentWithImageDoesNotMutateBaseline(t *testing.T) {
	base := TextOnly("t", "b", PriorityHigh)
	enriched := base.WithImage(Attachment{Path: "/tmp/a.png"})

	assert.False(t, base.HasImage())
	assert.Equal(t, StyleDefault, base.Style)
	assert.True(t, enriched.HasImage())
	assert.Equal(t, StyleBigPicture, enriched.Style)
}
