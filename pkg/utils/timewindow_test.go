package utils_test

import (
	"testing"

	"github.com/AlexYeap93/ridealong-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockMinutes(t *testing.T) {
	cases := map[string]int{
		"10:00 AM": 600,
		"10:25 am": 625,
		"12:00 AM": 0,
		"12:30 PM": 750,
		"14:30":    870,
		"00:10":    10,
	}
	for input, want := range cases {
		got, err := utils.ParseClockMinutes(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := utils.ParseClockMinutes("25:99")
	assert.Error(t, err)
	_, err = utils.ParseClockMinutes("noon")
	assert.Error(t, err)
}

func TestWithinWindow(t *testing.T) {
	// 10:25 is within 30 minutes of 10:00, 10:35 is not
	assert.True(t, utils.WithinWindow("10:00 AM", "10:25 AM", 30))
	assert.False(t, utils.WithinWindow("10:00 AM", "10:35 AM", 30))

	// Boundary is inclusive
	assert.True(t, utils.WithinWindow("10:00 AM", "10:30 AM", 30))

	// Unparseable input never matches
	assert.False(t, utils.WithinWindow("garbage", "10:00 AM", 30))
}

func TestWithinWindowAcrossMidnight(t *testing.T) {
	// 11:50 PM and 12:10 AM are 20 minutes apart on a clock
	assert.True(t, utils.WithinWindow("11:50 PM", "12:10 AM", 30))
	assert.False(t, utils.WithinWindow("11:00 PM", "12:10 AM", 30))
}

func TestClockDistance(t *testing.T) {
	assert.Equal(t, 0, utils.ClockDistance(600, 600))
	assert.Equal(t, 25, utils.ClockDistance(600, 625))
	assert.Equal(t, 20, utils.ClockDistance(1430, 10))
	assert.Equal(t, 720, utils.ClockDistance(0, 720))
}
