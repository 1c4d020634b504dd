package background

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/bitmark-inc/mutual-aid-api/external/onesignal"
)

// Sender delivers one notification to one user
type Sender interface {
	Send(ctx context.Context, userID string, fields TemplateFields) error
}

// OneSignalLanguageCode is a mapping between onesignal language code and i18n language code
var OneSignalLanguageCode = map[string]string{
	"zh_cn": "zh-Hans",
	"en":    "en",
}

type onesignalClient interface {
	SendNotification(ctx context.Context, req *onesignal.NotificationRequest) error
}

// OneSignalSender pushes notifications to the devices tagged with the user id
type OneSignalSender struct {
	appID      string
	templateID string
	client     onesignalClient
}

func NewOneSignalSender(appID, templateID string, client *onesignal.OneSignalClient) *OneSignalSender {
	return &OneSignalSender{
		appID:      appID,
		templateID: templateID,
		client:     client,
	}
}

func (o *OneSignalSender) Send(ctx context.Context, userID string, fields TemplateFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	data := make(map[string]interface{}, len(fields.Data)+4)
	for k, v := range fields.Data {
		data[k] = v
	}
	data["distance"] = fields.Distance
	data["created_at"] = fields.CreatedAt
	data["note"] = fields.Note
	if fields.Address != "" {
		data["address"] = fields.Address
	}

	req := &onesignal.NotificationRequest{
		AppID:                  o.appID,
		TemplateID:             o.templateID,
		IncludeExternalUserIDs: []string{userID},
		Data:                   data,
		LocalChannelID:         "important_alert",
	}

	if o.templateID == "" {
		// onesignal always requires the english copy
		req.Headings = map[string]string{"en": fields.Title}
		req.Contents = map[string]string{"en": fields.Body}
		if code, ok := OneSignalLanguageCode[fields.Language]; ok && code != "en" {
			req.Headings[code] = fields.Title
			req.Contents[code] = fields.Body
		}
	}

	err := o.client.SendNotification(ctx, req)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, onesignal.ErrTemplateNotFound):
		return fmt.Errorf("%w: %s", ErrTemplateMissing, err)
	case errors.Is(err, onesignal.ErrNotSubscribed):
		return fmt.Errorf("%w: %s", ErrNotSubscribed, err)
	case errors.Is(err, onesignal.ErrMalformedRequest):
		return fmt.Errorf("%w: %s", ErrMalformedFields, err)
	}
	return err
}

// Publisher is the part of an amqp channel used to publish notifications
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender hands notifications over to a push gateway consuming from an exchange
type AMQPSender struct {
	channel    Publisher
	exchange   string
	routingKey string
}

func NewAMQPSender(channel Publisher, exchange, routingKey string) *AMQPSender {
	return &AMQPSender{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

type amqpNotification struct {
	UserID string         `json:"user_id"`
	Fields TemplateFields `json:"fields"`
	SentAt time.Time      `json:"sent_at"`
}

func (a *AMQPSender) Send(ctx context.Context, userID string, fields TemplateFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(amqpNotification{
		UserID: userID,
		Fields: fields,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedFields, err)
	}

	return a.channel.Publish(a.exchange, a.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%v:%s", fields.Data["help_id"], userID),
	})
}
