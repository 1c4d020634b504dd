package background

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/utils"
)

func TestClassify(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	cases := map[error]string{
		ErrTemplateMissing:                          ReasonTemplateMissing,
		fmt.Errorf("%w: code 400", ErrNotSubscribed): ReasonNotSubscribed,
		fmt.Errorf("%w: no id", ErrMalformedFields):  ReasonMalformed,
		ctx.Err():                                   ReasonTimeout,
		errors.New("connection reset by peer"):      ReasonFailed,
	}

	for err, reason := range cases {
		assert.Equal(t, reason, Classify(err), err.Error())
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	for _, reason := range []string{"", "", ReasonDuplicate, ReasonNotSubscribed, ReasonTimeout, ReasonFailed} {
		s.add(reason)
	}

	assert.Equal(t, 2, s.Sent)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 2, s.Reasons[""])
	assert.Equal(t, 1, s.Reasons[ReasonTimeout])
}

func TestBroadcastFields(t *testing.T) {
	help := &schema.HelpRequest{
		ID:        "help-1",
		Kind:      schema.HelpKindPad,
		Note:      "需要卫生巾，在图书馆三楼东侧",
		CreatedAt: time.Date(2020, 5, 1, 8, 30, 0, 0, time.UTC),
	}

	fields, err := BroadcastFields("en", utils.GetLocation("GMT+8"), help, 812, "Chaoyang, Beijing")
	assert.NoError(t, err)
	assert.Equal(t, "Help: pad needed", fields.Title)
	assert.Equal(t, "within 0.8km", fields.Distance)
	assert.Equal(t, "2020-05-01 16:30", fields.CreatedAt)
	assert.Equal(t, "Chaoyang, Beijing", fields.Address)
	assert.LessOrEqual(t, utils.DisplayWidth(fields.Note), 20)
	assert.Contains(t, fields.Body, "within 0.8km")
	assert.Equal(t, "help-1", fields.Data["help_id"])
	assert.Equal(t, BroadcastNewHelp, fields.Data["notification_type"])
	assert.NoError(t, fields.Validate())
}

func TestBroadcastFieldsDefaultNote(t *testing.T) {
	help := &schema.HelpRequest{ID: "help-1", Kind: schema.HelpKindSafety}

	fields, err := BroadcastFields("en", nil, help, 1500, "")
	assert.NoError(t, err)
	assert.Equal(t, "Urgent help needed", fields.Note)
	assert.Equal(t, "within 1.5km", fields.Distance)
}

func TestBroadcastFieldsUnknownKind(t *testing.T) {
	help := &schema.HelpRequest{ID: "help-1", Kind: "medicine"}

	_, err := BroadcastFields("en", nil, help, 100, "")
	assert.True(t, errors.Is(err, ErrTemplateMissing))
	assert.Equal(t, ReasonTemplateMissing, Classify(err))
}

func TestTemplateFieldsValidate(t *testing.T) {
	assert.True(t, errors.Is(TemplateFields{}.Validate(), ErrMalformedFields))
	assert.True(t, errors.Is(TemplateFields{Title: "t", Body: "b"}.Validate(), ErrMalformedFields))
}
