package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	defaultURL = "https://onesignal.com/api/v1"
	logPrefix  = "onesignal"
)

var (
	ErrTemplateNotFound = errors.New("notification template not found")
	ErrNotSubscribed    = errors.New("recipients are not subscribed")
	ErrMalformedRequest = errors.New("malformed notification request")
)

// NotificationRequest is the body of a create notification call
type NotificationRequest struct {
	AppID                  string                 `json:"app_id"`
	TemplateID             string                 `json:"template_id,omitempty"`
	Headings               map[string]string      `json:"headings,omitempty"`
	Contents               map[string]string      `json:"contents,omitempty"`
	Filters                []map[string]string    `json:"filters,omitempty"`
	IncludeExternalUserIDs []string               `json:"include_external_user_ids,omitempty"`
	Data                   map[string]interface{} `json:"data,omitempty"`
	LocalChannelID         string                 `json:"android_channel_id,omitempty"`
}

type notificationResponse struct {
	ID         string          `json:"id"`
	Recipients int             `json:"recipients"`
	Errors     json.RawMessage `json:"errors"`
}

type OneSignalClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

// NewClient returns a OneSignal REST client. An empty url uses the public endpoint.
func NewClient(httpClient *http.Client, apiKey, url string) *OneSignalClient {
	if url == "" {
		url = defaultURL
	}

	return &OneSignalClient{
		apiKey:     apiKey,
		url:        strings.TrimSuffix(url, "/"),
		httpClient: httpClient,
	}
}

// SendNotification creates a notification. Rejections are classified into
// ErrTemplateNotFound, ErrNotSubscribed and ErrMalformedRequest.
func (c *OneSignalClient) SendNotification(ctx context.Context, req *NotificationRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result notificationResponse
	if len(d) > 0 {
		if err := json.Unmarshal(d, &result); err != nil && resp.StatusCode == http.StatusOK {
			return err
		}
	}

	reason := describeErrors(result.Errors)

	log.WithFields(log.Fields{
		"prefix":     logPrefix,
		"status":     resp.StatusCode,
		"id":         result.ID,
		"recipients": result.Recipients,
	}).Debug("notification sent")

	switch {
	case resp.StatusCode == http.StatusOK && reason == "" && result.Recipients > 0:
		return nil
	case strings.Contains(strings.ToLower(reason), "template"):
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, reason)
	case strings.Contains(strings.ToLower(reason), "not subscribed"),
		resp.StatusCode == http.StatusOK && result.Recipients == 0:
		return fmt.Errorf("%w: %s", ErrNotSubscribed, reason)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrMalformedRequest, reason)
	case resp.StatusCode == http.StatusOK:
		return nil
	}

	return fmt.Errorf("onesignal responds status %d: %s", resp.StatusCode, reason)
}

// describeErrors flattens the errors field, which is either a list of strings
// or an object of lists
func describeErrors(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		parts := make([]string, 0, len(obj))
		for k, v := range obj {
			parts = append(parts, fmt.Sprintf("%s: %v", strings.ReplaceAll(k, "_", " "), v))
		}
		return strings.Join(parts, "; ")
	}

	return string(raw)
}
