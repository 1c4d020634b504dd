package background

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/utils"
)

const (
	BroadcastNewHelp = "BROADCAST_NEW_HELP"

	notifyTimeLayout = "2006-01-02 15:04"
)

// TemplateFields are the localized values filling a notification template
type TemplateFields struct {
	Language  string                 `json:"language"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Distance  string                 `json:"distance"`
	CreatedAt string                 `json:"created_at"`
	Note      string                 `json:"note"`
	Address   string                 `json:"address,omitempty"`
	Data      map[string]interface{} `json:"data"`
}

// Validate reports whether the fields could be sent at all
func (f TemplateFields) Validate() error {
	if f.Title == "" || f.Body == "" {
		return fmt.Errorf("%w: empty title or body", ErrMalformedFields)
	}
	if _, ok := f.Data["help_id"]; !ok {
		return fmt.Errorf("%w: no help id", ErrMalformedFields)
	}
	return nil
}

// BroadcastFields builds the fields telling a helper distance meters away about a request
func BroadcastFields(lang string, zone *time.Location, help *schema.HelpRequest, distance float64, address string) (TemplateFields, error) {
	if zone == nil {
		zone = time.UTC
	}

	title, err := utils.Localize(lang, "help.title_"+string(help.Kind), nil)
	if err != nil {
		return TemplateFields{}, fmt.Errorf("%w: %s", ErrTemplateMissing, err)
	}

	distanceText, err := utils.Localize(lang, "help.distance", map[string]interface{}{
		"Distance": fmt.Sprintf("%.1f", distance/1000),
	})
	if err != nil {
		return TemplateFields{}, fmt.Errorf("%w: %s", ErrTemplateMissing, err)
	}

	note := help.Note
	if note == "" {
		if note, err = utils.Localize(lang, "help.note_default", nil); err != nil {
			return TemplateFields{}, fmt.Errorf("%w: %s", ErrTemplateMissing, err)
		}
	}
	note = utils.TruncateDisplay(note, consts.NotifyNoteLength)

	body, err := utils.Localize(lang, "help.body", map[string]interface{}{
		"Note":     note,
		"Distance": distanceText,
	})
	if err != nil {
		return TemplateFields{}, fmt.Errorf("%w: %s", ErrTemplateMissing, err)
	}

	return TemplateFields{
		Language:  lang,
		Title:     title,
		Body:      body,
		Distance:  distanceText,
		CreatedAt: help.CreatedAt.In(zone).Format(notifyTimeLayout),
		Note:      note,
		Address:   address,
		Data: map[string]interface{}{
			"notification_type": BroadcastNewHelp,
			"help_id":           help.ID,
			"kind":              string(help.Kind),
		},
	}, nil
}
