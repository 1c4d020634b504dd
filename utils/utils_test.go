package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLocation(t *testing.T) {
	tz8 := GetLocation("GMT+8")
	assert.NotNil(t, tz8)
	assert.Equal(t, "GMT+8", tz8.String())

	tz1245 := GetLocation("GMT+12:45")
	assert.NotNil(t, tz1245)
	assert.Equal(t, "GMT+12:45", tz1245.String())

	tz_945 := GetLocation("gmt-9:45")
	assert.NotNil(t, tz_945)
	assert.Equal(t, "GMT-9:45", tz_945.String())

	assert.Nil(t, GetLocation("UTC"))
	assert.Nil(t, GetLocation("GMT*8"))
	assert.Nil(t, GetLocation("GMT+8:75"))
}

func TestTruncateDisplay(t *testing.T) {
	assert.Equal(t, "urgent", TruncateDisplay("urgent", 20))
	assert.Equal(t, "abcdefghijklmnopqrst", TruncateDisplay("abcdefghijklmnopqrstuvwxyz", 20))
	assert.Equal(t, "急需卫生巾急需卫生巾", TruncateDisplay("急需卫生巾急需卫生巾谢谢", 20))
	assert.Equal(t, "ab急需卫生巾急需卫生", TruncateDisplay("ab急需卫生巾急需卫生巾", 20))
	assert.Equal(t, 4, DisplayWidth("急需"))
}

func TestLocalizeBuiltin(t *testing.T) {
	title, err := Localize("en", "help.title_pad", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Help: pad needed", title)

	distance, err := Localize("fr", "help.distance", map[string]interface{}{"Distance": "0.8"})
	assert.NoError(t, err)
	assert.Equal(t, "within 0.8km", distance)

	_, err = Localize("en", "help.title_unknown", nil)
	assert.Error(t, err)
}
