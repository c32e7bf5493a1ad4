package symptoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "AM 09:30", want: "AM 09:30"},
		{in: "pm 9:05", want: "PM 09:05"},
		{in: " PM 12:00 ", want: "PM 12:00"},
		{in: "AM 00:30", wantErr: true},
		{in: "AM 13:00", wantErr: true},
		{in: "AM 10:60", wantErr: true},
		{in: "AM 10:5", wantErr: true},
		{in: "XX 10:00", wantErr: true},
		{in: "10:00", wantErr: true},
		{in: "AM 10-00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseOptionalTime_Empty(t *testing.T) {
	got, err := parseOptionalTime("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}
