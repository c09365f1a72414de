package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Valid date",
			input:    "2026-01-27",
			expected: time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:     "RFC 3339 timestamp",
			input:    "2026-01-27T15:04:05Z",
			expected: time.Date(2026, 1, 27, 15, 4, 5, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:    "Invalid format",
			input:   "27-01-2026",
			wantErr: true,
		},
		{
			name:    "Invalid day",
			input:   "2026-01-32",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	t.Run("Both empty leaves the range open", func(t *testing.T) {
		r, err := ParseDateRange("", "")
		assert.NoError(t, err)
		assert.Nil(t, r.Start)
		assert.Nil(t, r.End)
		assert.True(t, r.Contains(time.Now()))
	})

	t.Run("Bounds are inclusive", func(t *testing.T) {
		r, err := ParseDateRange("2024-01-01", "2024-01-31")
		assert.NoError(t, err)
		assert.True(t, r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, r.Contains(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
		assert.False(t, r.Contains(time.Date(2024, 1, 31, 0, 0, 1, 0, time.UTC)))
		assert.False(t, r.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("Invalid start", func(t *testing.T) {
		_, err := ParseDateRange("yesterday", "")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "start_date", ve.Field)
	})

	t.Run("Invalid end", func(t *testing.T) {
		_, err := ParseDateRange("2024-01-01", "31/01/2024")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "end_date", ve.Field)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
