package utils

import (
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

// DefaultLanguage is used when a caller does not tell its language
const DefaultLanguage = "en"

// builtinMessages keeps notifications readable when no message files are deployed
var builtinMessages = []*i18n.Message{
	{ID: "help.title_pad", Other: "Help: pad needed"},
	{ID: "help.title_tissue", Other: "Help: tissue needed"},
	{ID: "help.title_resource", Other: "Help: item needed"},
	{ID: "help.title_safety", Other: "Help: company needed"},
	{ID: "help.title_emotional", Other: "Help: someone to talk to"},
	{ID: "help.title_other", Other: "Help needed"},
	{ID: "help.distance", Other: "within {{.Distance}}km"},
	{ID: "help.note_default", Other: "Urgent help needed"},
	{ID: "help.body", Other: "{{.Note}} ({{.Distance}})"},
	{ID: "help.resource_request", Other: "Requesting resource: {{.Resource}}"},
	{ID: "session.contact", Other: "A helper has joined the conversation"},
	{ID: "session.meeting", Other: "Meeting point: {{.Point}}"},
	{ID: "session.nudge", Other: "No reply yet. You may share a meeting point or wait for other helpers."},
}

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	b.AddMessages(language.English, builtinMessages...)
	return b
}

// InitI18NBundle loads the message files under dir on top of the builtin messages
func InitI18NBundle(dir string) {
	b := newBundle()
	b.MustLoadMessageFile(path.Join(dir, "en.yaml"))
	b.MustLoadMessageFile(path.Join(dir, "zh_cn.yaml"))
	bundle = b
}

func NewLocalizer(lang string) *i18n.Localizer {
	bundleOnce.Do(func() {
		if bundle == nil {
			bundle = newBundle()
		}
	})
	return i18n.NewLocalizer(bundle, lang, DefaultLanguage)
}

// Localize returns the message of id rendered with data
func Localize(lang, id string, data map[string]interface{}) (string, error) {
	return NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}
