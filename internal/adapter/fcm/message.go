package fcm

import (
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"push-attach/internal/domain/model"
)

var notificationPriorities = map[messaging.AndroidNotificationPriority]model.Priority{
	messaging.PriorityMin:     model.PriorityMin,
	messaging.PriorityLow:     model.PriorityLow,
	messaging.PriorityDefault: model.PriorityDefault,
	messaging.PriorityHigh:    model.PriorityHigh,
	messaging.PriorityMax:     model.PriorityMax,
}

// DecodeMessage accepts either the HTTP v1 envelope {"message": {...}} or a
// bare message object.
func DecodeMessage(data []byte) (*messaging.Message, error) {
	var envelope struct {
		Message *messaging.Message `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode fcm envelope: %w", err)
	}
	if envelope.Message != nil {
		return envelope.Message, nil
	}

	var message messaging.Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("decode fcm message: %w", err)
	}
	return &message, nil
}

// ToRequest flattens an FCM message into the payload shape a device receives.
func ToRequest(message *messaging.Message) model.Request {
	if message == nil {
		return model.Request{Payload: model.Payload{}}
	}

	payload := make(model.Payload, len(message.Data)+3)
	for key, value := range message.Data {
		payload[key] = value
	}

	var title, body string
	if message.Notification != nil {
		title = message.Notification.Title
		body = message.Notification.Body
		setIfEmpty(payload, "gcm.notification.image", message.Notification.ImageURL)
	}

	if android := message.Android; android != nil {
		if n := android.Notification; n != nil {
			if title == "" {
				title = n.Title
			}
			if body == "" {
				body = n.Body
			}
			setIfEmpty(payload, "gcm.notification.image", n.ImageURL)
			if priority, ok := notificationPriorities[n.Priority]; ok {
				setIfEmpty(payload, "priority", string(priority))
			}
		}
		setIfEmpty(payload, "priority", android.Priority)
	}

	if apns := message.APNS; apns != nil && apns.FCMOptions != nil && apns.FCMOptions.ImageURL != "" {
		payload["fcm_options"] = map[string]any{"image": apns.FCMOptions.ImageURL}
	}

	return model.Request{
		Title:   title,
		Body:    body,
		Payload: payload,
	}
}

func setIfEmpty(payload model.Payload, key, value string) {
	if value == "" {
		return
	}
	if existing, ok := payload[key].(string); ok && existing != "" {
		return
	}
	payload[key] = value
}
