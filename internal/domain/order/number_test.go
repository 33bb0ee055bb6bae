package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNumber(t *testing.T) {
	day := time.Date(2024, time.January, 23, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		count int64
		want  string
	}{
		{0, "2401230001"},
		{6, "2401230007"},
		{998, "2401230999"},
		{9998, "2401239999"},
	}

	for _, tt := range tests {
		got := GenerateNumber(day, tt.count)
		assert.Equal(t, tt.want, got)
		assert.Len(t, got, 10)
	}
}

func TestStartOfDay_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	ts := time.Date(2024, time.March, 1, 22, 30, 0, 0, loc)

	start := StartOfDay(ts)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, "240301", DayKey(ts))
	// the same instant is already the next day in UTC
	assert.Equal(t, "240302", DayKey(ts.UTC()))
}

func TestSequence(t *testing.T) {
	n, ok := Sequence("2401230042")
	assert.True(t, ok)
	assert.EqualValues(t, 42, n)

	n, ok = Sequence("2401239999")
	assert.True(t, ok)
	assert.EqualValues(t, MaxDailySequence, n)

	_, ok = Sequence("240123")
	assert.False(t, ok)
	_, ok = Sequence("240123abcd")
	assert.False(t, ok)
}
