package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-0.2, 0.0, 1.0, 0.0},
		{1.7, 0.0, 1.0, 1.0},
		{50.0, 45.0, 5.0, 45.0}, // reversed bounds
		{4.9, 5.0, 45.0, 5.0},
	}

	for _, testCase := range testCases {
		require.Equal(t, testCase.expected, Clamp(testCase.value, testCase.min, testCase.max))
	}

	require.Equal(t, 3, Clamp(7, 0, 3))
}

func TestToUnitClamp(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.125, ToUnitClamp(10.0, 5.0, 45.0), 1e-9)
	require.Equal(t, 0.0, ToUnitClamp(1.0, 5.0, 45.0))
	require.Equal(t, 1.0, ToUnitClamp(99.0, 5.0, 45.0))
	require.Equal(t, 0.0, ToUnitClamp(5.0, 5.0, 5.0))
}
