package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"int", 42, 42},
		{"float", float64(600), 600},
		{"string", "120", 120},
		{"float string", "90.5", 90},
		{"padded", " 7 ", 7},
		{"bytes", []byte("15"), 15},
		{"garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "12345", ToString(float64(12345)))
	assert.Equal(t, "7", ToString(7))
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	got := ToTime("2024-03-01T10:00:00Z")
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got))

	got = ToTime(float64(want.Unix()))
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got))

	got = ToTime(want.UnixMilli())
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got))

	got = ToTime("1709287200")
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got))

	assert.Nil(t, ToTime(nil))
	assert.Nil(t, ToTime(""))
	assert.Nil(t, ToTime("yesterday"))
	assert.Nil(t, ToTime(0))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
