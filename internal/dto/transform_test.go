package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPadLapTime(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"short lap time is padded", ptr("1:23.4"), ptr("1:23.4000")},
		{"full width unchanged", ptr("1:23.4567"), ptr("1:23.4567")},
		{"longer than width unchanged", ptr("12:03.45678"), ptr("12:03.45678")},
		{"empty string unchanged", ptr(""), ptr("")},
		{"absent stays absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PadLapTime(tt.in))
		})
	}
}

func TestPadLapTime_DoesNotMutateInput(t *testing.T) {
	in := ptr("1:02.5")
	PadLapTime(in)
	assert.Equal(t, "1:02.5", *in)
}

func TestTiresName(t *testing.T) {
	assert.Equal(t, "N/A", TiresName(nil))
	assert.Equal(t, "N/A", TiresName(ptr("")))
	assert.Equal(t, "Michelin", TiresName(ptr("Michelin")))
}

func TestEncodeBinary(t *testing.T) {
	assert.Equal(t, "", EncodeBinary(nil))
	assert.Equal(t, "", EncodeBinary([]byte{}))
	assert.Equal(t, "aGVsbG8=", EncodeBinary([]byte("hello")))

	decoded, err := DecodeBinary("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)

	_, err = DecodeBinary("%%%")
	assert.Error(t, err)
}

func TestDates(t *testing.T) {
	assert.Nil(t, FormatDate(nil))

	d := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ptr("2024-03-09"), FormatDate(&d))

	parsed, err := ParseDate(ptr("2024-03-09"))
	require.NoError(t, err)
	assert.True(t, d.Equal(*parsed))

	parsed, err = ParseDate(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
