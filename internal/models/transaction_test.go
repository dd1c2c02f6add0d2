package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateString(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"no zero padding", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "3/5/2024"},
		{"two digit fields", time.Date(2025, time.November, 28, 0, 0, 0, 0, time.UTC), "11/28/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Date: tt.date}
			assert.Equal(t, tt.want, tx.DateString())
		})
	}
}

func TestParseModeString(t *testing.T) {
	assert.Equal(t, "none", ModeNone.String())
	assert.Equal(t, "single-line", ModeSingleLine.String())
	assert.Equal(t, "multi-line", ModeMultiLine.String())
}
