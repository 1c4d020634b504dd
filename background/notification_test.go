package background

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mutual-aid-api/external/onesignal"
)

type fakeOneSignal struct {
	requests []*onesignal.NotificationRequest
	err      error
}

func (f *fakeOneSignal) SendNotification(ctx context.Context, req *onesignal.NotificationRequest) error {
	f.requests = append(f.requests, req)
	return f.err
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakePublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func testFields(lang string) TemplateFields {
	return TemplateFields{
		Language:  lang,
		Title:     "Help: pad needed",
		Body:      "urgent (within 0.8km)",
		Distance:  "within 0.8km",
		CreatedAt: "2020-05-01 16:30",
		Note:      "urgent",
		Data: map[string]interface{}{
			"notification_type": BroadcastNewHelp,
			"help_id":           "help-1",
		},
	}
}

func TestOneSignalSenderWithoutTemplate(t *testing.T) {
	client := &fakeOneSignal{}
	sender := &OneSignalSender{appID: "app", client: client}

	assert.NoError(t, sender.Send(context.Background(), "helper", testFields("zh_cn")))
	assert.Len(t, client.requests, 1)

	req := client.requests[0]
	assert.Equal(t, "app", req.AppID)
	assert.Equal(t, []string{"helper"}, req.IncludeExternalUserIDs)
	assert.Equal(t, "Help: pad needed", req.Headings["en"])
	assert.Equal(t, "Help: pad needed", req.Headings["zh-Hans"])
	assert.Equal(t, "help-1", req.Data["help_id"])
	assert.Equal(t, "within 0.8km", req.Data["distance"])
}

func TestOneSignalSenderWithTemplate(t *testing.T) {
	client := &fakeOneSignal{}
	sender := &OneSignalSender{appID: "app", templateID: "template", client: client}

	assert.NoError(t, sender.Send(context.Background(), "helper", testFields("en")))
	assert.Equal(t, "template", client.requests[0].TemplateID)
	assert.Nil(t, client.requests[0].Headings)
}

func TestOneSignalSenderClassifiesErrors(t *testing.T) {
	cases := map[error]string{
		onesignal.ErrTemplateNotFound: ReasonTemplateMissing,
		onesignal.ErrNotSubscribed:    ReasonNotSubscribed,
		onesignal.ErrMalformedRequest: ReasonMalformed,
		errors.New("502 bad gateway"): ReasonFailed,
	}

	for cause, reason := range cases {
		client := &fakeOneSignal{err: fmt.Errorf("%w: from server", cause)}
		sender := &OneSignalSender{appID: "app", client: client}

		err := sender.Send(context.Background(), "helper", testFields("en"))
		assert.Equal(t, reason, Classify(err), cause.Error())
	}
}

func TestOneSignalSenderRejectsMalformedFields(t *testing.T) {
	client := &fakeOneSignal{}
	sender := &OneSignalSender{appID: "app", client: client}

	err := sender.Send(context.Background(), "helper", TemplateFields{})
	assert.Equal(t, ReasonMalformed, Classify(err))
	assert.Empty(t, client.requests)
}

func TestAMQPSender(t *testing.T) {
	publisher := &fakePublisher{}
	sender := NewAMQPSender(publisher, "notifications", "help.broadcast")

	assert.NoError(t, sender.Send(context.Background(), "helper", testFields("en")))
	assert.Equal(t, "notifications", publisher.exchange)
	assert.Equal(t, "help.broadcast", publisher.key)
	assert.Equal(t, "help-1:helper", publisher.msg.MessageId)
	assert.Equal(t, amqp.Persistent, publisher.msg.DeliveryMode)

	var body amqpNotification
	assert.NoError(t, json.Unmarshal(publisher.msg.Body, &body))
	assert.Equal(t, "helper", body.UserID)
	assert.Equal(t, "Help: pad needed", body.Fields.Title)
}

func TestAMQPSenderCancelled(t *testing.T) {
	publisher := &fakePublisher{}
	sender := NewAMQPSender(publisher, "notifications", "help.broadcast")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, sender.Send(ctx, "helper", testFields("en")))
	assert.Empty(t, publisher.exchange)
}
