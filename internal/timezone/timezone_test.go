package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
}

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Location("nope").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, "America/Sao_Paulo", d.Location().String())

	_, err = ParseDate("07/09/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-40")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	_, err := ParseClock("09:30")
	assert.NoError(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("9h30")
	assert.Error(t, err)
}
