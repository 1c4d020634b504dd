package help

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// CreateInput is the input of Create
type CreateInput struct {
	RequesterID string           `validate:"required"`
	Kind        schema.HelpKind  `validate:"required,helpkind"`
	Note        string           `validate:"max=500"`
	Location    *schema.Location `validate:"required"`
}

// CompleteInput is the input of Complete. An empty WinningSessionID picks the
// active session with the matched helper.
type CompleteInput struct {
	MeetingLocation  string `json:"meeting_location" validate:"max=100"`
	MeetingNotes     string `json:"meeting_notes" validate:"max=500"`
	WinningSessionID string `json:"winning_session_id"`
}

type resourceRequestInput struct {
	CallerID string `validate:"required"`
	HelperID string `validate:"required,nefield=CallerID,ne=system"`
	Resource string `validate:"required,max=32"`
}

type messageInput struct {
	SessionID string             `validate:"required"`
	SenderID  string             `validate:"required,ne=system"`
	Content   string             `validate:"required,max=1000"`
	Kind      schema.MessageKind `validate:"oneof=text location"`
}

type meetingInput struct {
	Point string `validate:"required,max=100"`
}

type resourcesInput struct {
	Resources []string `validate:"max=20,dive,required,max=32"`
}

type privacyInput struct {
	Meters float64 `validate:"gte=1,lte=5000"`
}

type displayNameInput struct {
	DisplayName string `validate:"required,max=50"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("helpkind", func(fl validator.FieldLevel) bool {
		return schema.HelpKind(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		loc := sl.Current().Interface().(schema.Location)
		if !geo.ValidCoordinates(loc) {
			sl.ReportError(loc.Latitude, "Latitude", "Latitude", "coordinates", "")
		}
	}, schema.Location{})
	return v
}

// check validates the struct and converts the failure into a ValidationError
func (c *Coordinator) check(input interface{}) error {
	err := c.validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return validationError("invalid input: %s", err)
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			reasons = append(reasons, fmt.Sprintf("%s fails on %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			reasons = append(reasons, fmt.Sprintf("%s fails on %s", fe.Namespace(), fe.Tag()))
		}
	}
	return validationError("invalid input: %s", strings.Join(reasons, ", "))
}

func normalizeLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func messagePageSize(limit int) int {
	return normalizeLimit(limit, consts.DefaultMessagePageSize, consts.MaxMessagePageSize)
}
