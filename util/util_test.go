package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substitution-plan-notifier/exceptions"
)

func TestTimeBlockLabels(t *testing.T) {
	assert.Equal(t, "0: 07:15\n - 08:00", TimeBlock(0).Label())
	assert.Equal(t, "3: 11:40\n - 13:10", TimeBlock(3).Label())
	assert.Equal(t, "5: 15:15\n - 16:45", TimeBlock(5).Label())
	assert.True(t, TimeBlock(5).Valid())
	assert.False(t, TimeBlock(6).Valid())

	for block := TimeBlock(0); block < BlockCount; block++ {
		assert.Less(t, block.Start(), block.End())
	}

	assert.Zero(t, TimeBlock(-1).Start())
	assert.Zero(t, TimeBlock(BlockCount).End())
}

func TestGetMidnightTime(t *testing.T) {
	now := time.Date(2024, 10, 14, 17, 42, 3, 99, time.Local)

	assert.Equal(t, time.Date(2024, 10, 14, 0, 0, 0, 0, time.Local), GetMidnightTime(now))
}

func TestSchoolDays(t *testing.T) {
	assert.Equal(t, time.Monday, NextSchoolDay(time.Saturday))
	assert.Equal(t, time.Monday, NextSchoolDay(time.Sunday))
	assert.Equal(t, time.Wednesday, NextSchoolDay(time.Wednesday))

	assert.Equal(t, time.Monday, SchoolDayAfter(time.Friday))
	assert.Equal(t, time.Tuesday, SchoolDayAfter(time.Monday))
	assert.True(t, IsSchoolDay(time.Friday))
	assert.False(t, IsSchoolDay(time.Sunday))
}

func TestGermanWeekdays(t *testing.T) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		converted, err := ConvertFromGermanWeek(ConvertToGermanWeek(day))
		require.NoError(t, err)
		assert.Equal(t, day, converted)
	}

	_, err := ConvertFromGermanWeek("Monday")
	assert.Error(t, err)
}

func TestSanitizeClassName(t *testing.T) {
	class, err := SanitizeClassName("  bgym191 ")
	require.NoError(t, err)
	assert.Equal(t, "BGYM191", class)

	for _, input := range []string{"", "   ", "10A; drop", "ABCDEFGHIJKLMNOP"} {
		_, err := SanitizeClassName(input)
		assert.True(t, errors.Is(err, exceptions.InvalidClassName), input)
	}
}
