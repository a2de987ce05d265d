package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	pos, err := ParsePosition("HIGH")
	require.NoError(t, err)
	assert.Equal(t, High, pos)

	pos, err = ParsePosition(" low ")
	require.NoError(t, err)
	assert.Equal(t, Low, pos)

	_, err = ParsePosition("MIDDLE")
	require.Error(t, err)

	assert.Equal(t, "HIGH", High.String())
	assert.Equal(t, "LOW", Low.String())
}

func TestMotorPosition(t *testing.T) {
	t.Parallel()

	driver := NewMockDriver()
	fm := NewManager(driver)

	mouth, err := fm.Motor(23, "Mouth")
	require.NoError(t, err)

	_, commanded := mouth.Position()
	require.False(t, commanded)

	require.NoError(t, fm.Set(mouth, High))
	pos, commanded := mouth.Position()
	require.True(t, commanded)
	require.Equal(t, High, pos)

	last, ok := driver.Last(23)
	require.True(t, ok)
	require.Equal(t, High, last)
}
