package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("intermediate")
	require.NoError(t, err)
	assert.Equal(t, LevelIntermediate, l)

	_, err = ParseLevel("expert")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestParseDurationUnit(t *testing.T) {
	for in, want := range map[string]DurationUnit{
		"weeks": UnitWeeks,
		"Week":  UnitWeeks,
		"HOURS": UnitHours,
		"month": UnitMonths,
	} {
		got, err := ParseDurationUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDurationUnit("fortnights")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestDuration(t *testing.T) {
	d, err := NewDuration(2, UnitWeeks)
	require.NoError(t, err)
	assert.Equal(t, "2 Weeks", d.String())
	assert.Equal(t, "2Weeks", d.Compact())

	_, err = NewDuration(0, UnitDays)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = NewDuration(3, "Fortnights")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestDuration_StepGranularity(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Duration{45, UnitMinutes}, "Day"},
		{Duration{10, UnitDays}, "Day"},
		{Duration{60, UnitDays}, "Week"},
		{Duration{2, UnitWeeks}, "Day"},
		{Duration{6, UnitWeeks}, "Week"},
		{Duration{3, UnitMonths}, "Week"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.StepGranularity(), tt.d.String())
	}
}
