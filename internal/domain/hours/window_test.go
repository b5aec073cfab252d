package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.July, 15, hour, minute, 0, 0, time.UTC)
}

func TestIsOpen_AlwaysOpen(t *testing.T) {
	specs := []string{"00:00-23:59", "24/7", "24x7", "Always Open", " open 24 hours ", "24 hours"}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			for minute := 0; minute < minutesPerDay; minute++ {
				if !IsOpen(spec, at(minute/60, minute%60)) {
					t.Fatalf("%q closed at %02d:%02d", spec, minute/60, minute%60)
				}
			}
		})
	}
}

func TestIsOpen_SameDayWindow(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "at opening", hour: 8, minute: 0, want: true},
		{name: "last open minute", hour: 19, minute: 59, want: true},
		{name: "before opening", hour: 7, minute: 59, want: false},
		{name: "at closing", hour: 20, minute: 0, want: false},
		{name: "midday", hour: 12, minute: 30, want: true},
		{name: "late night", hour: 23, minute: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpen("08:00-20:00", at(tt.hour, tt.minute)))
		})
	}
}

func TestIsOpen_OvernightWindow(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "late evening", hour: 23, minute: 0, want: true},
		{name: "after midnight", hour: 1, minute: 0, want: true},
		{name: "at opening", hour: 18, minute: 0, want: true},
		{name: "at closing", hour: 2, minute: 0, want: false},
		{name: "before opening", hour: 17, minute: 59, want: false},
		{name: "midday", hour: 12, minute: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpen("18:00-02:00", at(tt.hour, tt.minute)))
		})
	}
}

func TestIsOpen_ClosingAtMidnight(t *testing.T) {
	w, err := Parse("08:00-00:00")
	require.NoError(t, err)

	assert.False(t, w.Overnight())
	assert.Equal(t, minutesPerDay, w.Close)
	assert.True(t, w.IsOpenAt(at(23, 59)))
	assert.True(t, w.IsOpenAt(at(8, 0)))
	assert.False(t, w.IsOpenAt(at(0, 0)))
	assert.False(t, w.IsOpenAt(at(7, 59)))
}

func TestIsOpen_MalformedDegradesToClosed(t *testing.T) {
	specs := []string{
		"25:00-08:00",
		"0800",
		"08:00",
		"08:00-",
		"-20:00",
		"ab:cd-ef:gh",
		"08:60-20:00",
		"24:00-08:00",
		"08:00-20:00-22:00",
		"8-20",
		"",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			assert.NotPanics(t, func() {
				for _, hour := range []int{0, 6, 12, 18, 23} {
					assert.False(t, IsOpen(spec, at(hour, 0)))
				}
			})
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("accepts surrounding whitespace and single digit hours", func(t *testing.T) {
		w, err := Parse(" 9:30 - 17:15 ")
		require.NoError(t, err)
		assert.Equal(t, Window{Open: 570, Close: 1035}, w)
		assert.Equal(t, "09:30-17:15", w.String())
	})

	t.Run("full day literal is always open", func(t *testing.T) {
		w, err := Parse("00:00-23:59")
		require.NoError(t, err)
		assert.True(t, w.AlwaysOpen)
		assert.Equal(t, "24/7", w.String())
	})

	t.Run("reports malformed input", func(t *testing.T) {
		_, err := Parse("25:00-08:00")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Contains(t, err.Error(), "25:00-08:00")
	})

	t.Run("overnight window renders its closing time", func(t *testing.T) {
		w, err := Parse("22:00-06:00")
		require.NoError(t, err)
		assert.True(t, w.Overnight())
		assert.Equal(t, "22:00-06:00", w.String())
	})

	t.Run("midnight close renders as 00:00", func(t *testing.T) {
		w, err := Parse("10:00-00:00")
		require.NoError(t, err)
		assert.Equal(t, "10:00-00:00", w.String())
	})
}

func TestIsOpenAt_UsesTimeLocation(t *testing.T) {
	w, err := Parse("09:00-18:00")
	require.NoError(t, err)

	kolkata := time.FixedZone("IST", 5*3600+1800)
	utcMorning := time.Date(2024, time.July, 15, 4, 0, 0, 0, time.UTC)

	assert.False(t, w.IsOpenAt(utcMorning))
	assert.True(t, w.IsOpenAt(utcMorning.In(kolkata)), "09:30 local time")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("10:00-22:00"))
	assert.Error(t, Validate("10:00 to 22:00"))
}
