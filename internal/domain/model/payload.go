package model

import (
	"encoding/json"
	"strings"
)

// Payload is the raw key/value mapping delivered by the push transport.
type Payload map[string]any

// LookupRule extracts a single candidate value from a payload.
type LookupRule struct {
	Key    string
	Lookup func(Payload) (string, bool)
}

// ImageURLRules is the ordered probing policy for the notification image.
// The order follows what the FCM SDKs emit on devices and must not be
// reshuffled without real payload samples.
var ImageURLRules = []LookupRule{
	{Key: "fcm_options.image", Lookup: nestedString("fcm_options", "image")},
	{Key: "image", Lookup: topLevelString("image")},
	{Key: "gcm.notification.image", Lookup: topLevelString("gcm.notification.image")},
	{Key: "image-url", Lookup: topLevelString("image-url")},
	{Key: "image_url", Lookup: topLevelString("image_url")},
	{Key: "attachment-url", Lookup: topLevelString("attachment-url")},
}

// ImageURL returns the first non-empty image URL and the key it came from.
func (p Payload) ImageURL() (value string, key string, ok bool) {
	for _, rule := range ImageURLRules {
		if v, found := rule.Lookup(p); found {
			return v, rule.Key, true
		}
	}
	return "", "", false
}

// Priority reads the optional "priority" field, defaulting to PriorityHigh.
func (p Payload) Priority() Priority {
	raw, ok := topLevelString("priority")(p)
	if !ok {
		return PriorityHigh
	}
	return ParsePriority(raw)
}

func topLevelString(key string) func(Payload) (string, bool) {
	return func(p Payload) (string, bool) {
		return nonEmptyString(p[key])
	}
}

func nestedString(parent, key string) func(Payload) (string, bool) {
	return func(p Payload) (string, bool) {
		switch nested := p[parent].(type) {
		case map[string]any:
			return nonEmptyString(nested[key])
		case Payload:
			return nonEmptyString(nested[key])
		case map[string]string:
			return nonEmptyString(nested[key])
		case string:
			// data-only messages deliver nested objects as JSON text
			var decoded map[string]any
			if err := json.Unmarshal([]byte(nested), &decoded); err != nil {
				return "", false
			}
			return nonEmptyString(decoded[key])
		default:
			return "", false
		}
	}
}

func nonEmptyString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
