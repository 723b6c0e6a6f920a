package model

import "strings"

// Priority mirrors the platform notification priority levels.
type Priority string

const (
	PriorityMin     Priority = "min"
	PriorityLow     Priority = "low"
	PriorityDefault Priority = "default"
	PriorityHigh    Priority = "high"
	PriorityMax     Priority = "max"
)

// ParsePriority maps a payload priority string onto a Priority. FCM's
// "normal" is treated as default; unknown values fall back to high.
func ParsePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "min":
		return PriorityMin
	case "low":
		return PriorityLow
	case "default", "normal":
		return PriorityDefault
	case "max":
		return PriorityMax
	default:
		return PriorityHigh
	}
}

// Style selects how the display layer lays the notification out.
type Style string

const (
	StyleDefault Style = "default"
	// StyleBigPicture uses the attached image as both the large icon and the
	// expanded picture.
	StyleBigPicture Style = "big_picture"
)

// Attachment is a handle to an image staged on the local filesystem.
// Whoever receives the Content owns the file and is responsible for removing it.
type Attachment struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Extension   string `json:"extension"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Digest      string `json:"digest"`
}

// Content is the final notification handed to the display layer.
type Content struct {
	Title    string      `json:"title"`
	Body     string      `json:"body"`
	Priority Priority    `json:"priority"`
	Style    Style       `json:"style"`
	Image    *Attachment `json:"image,omitempty"`
}

// TextOnly builds the baseline notification without an image.
func TextOnly(title, body string, priority Priority) Content {
	return Content{
		Title:    title,
		Body:     body,
		Priority: priority,
		Style:    StyleDefault,
	}
}

// WithImage returns a copy of c enriched with the staged image.
func (c Content) WithImage(attachment Attachment) Content {
	c.Image = &attachment
	c.Style = StyleBigPicture
	return c
}

// HasImage reports whether an image is attached.
func (c Content) HasImage() bool {
	return c.Image != nil
}

// Request is a single incoming notification event.
type Request struct {
	Title   string
	Body    string
	Payload Payload
}
