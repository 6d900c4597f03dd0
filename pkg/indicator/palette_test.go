package indicator_test

import (
	"testing"

	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := indicator.ParseHex("#ff00ff")
	require.NoError(t, err)
	assert.Equal(t, indicator.Purple, c)

	c, err = indicator.ParseHex("00FF00")
	require.NoError(t, err)
	assert.Equal(t, indicator.Green, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := indicator.ParseHex(bad)
		assert.Error(t, err, bad)
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#ff0000", indicator.Red.Hex())
	assert.Equal(t, "#0a0b0c", indicator.Color{R: 10, G: 11, B: 12}.Hex())
}

func TestDefaultPalette(t *testing.T) {
	p := indicator.DefaultPalette()
	require.NoError(t, p.Validate())

	assert.Equal(t, indicator.Red, p.ColorFor(model.PendingWork))
	assert.Equal(t, indicator.Green, p.ColorFor(model.Working))
	assert.Equal(t, indicator.Red, p.ColorFor(model.PendingShortBreak))
	assert.Equal(t, indicator.Blue, p.ColorFor(model.ShortBreak))
	assert.Equal(t, indicator.Red, p.ColorFor(model.PendingLongBreak))
	assert.Equal(t, indicator.Purple, p.ColorFor(model.LongBreak))
}

func TestPalette_ValidateIncomplete(t *testing.T) {
	p := indicator.DefaultPalette()
	delete(p, model.LongBreak)

	err := p.Validate()
	assert.ErrorIs(t, err, indicator.ErrIncompletePalette)
	assert.Contains(t, err.Error(), "long_break")
}

func TestPalette_WithOverrides(t *testing.T) {
	base := indicator.DefaultPalette()
	p, err := base.WithOverrides(map[string]string{
		"pending_work": "#ffa500",
		"short_break":  "",
	})
	require.NoError(t, err)

	assert.Equal(t, indicator.Color{R: 255, G: 165}, p.ColorFor(model.PendingWork))
	assert.Equal(t, indicator.Blue, p.ColorFor(model.ShortBreak))
	// The base palette is untouched.
	assert.Equal(t, indicator.Red, base.ColorFor(model.PendingWork))
}

func TestPalette_WithOverridesErrors(t *testing.T) {
	_, err := indicator.DefaultPalette().WithOverrides(map[string]string{"lunch": "#ffffff"})
	assert.Error(t, err)

	_, err = indicator.DefaultPalette().WithOverrides(map[string]string{"working": "green"})
	assert.Error(t, err)
}
