package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/service"
)

func at(day, hour, minute, sec int) time.Time {
	return time.Date(2026, 5, day, hour, minute, sec, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestShouldReset(t *testing.T) {
	eight := &domain.TimeOfDay{Hour: 8, Minute: 0}

	tests := []struct {
		name      string
		state     domain.CardState
		resetTime *domain.TimeOfDay
		lastGreen *time.Time
		now       time.Time
		want      bool
	}{
		{
			name:      "red card never resets",
			state:     domain.CardStateRed,
			resetTime: eight,
			lastGreen: ptrTime(at(14, 18, 0, 0)),
			now:       at(15, 9, 0, 0),
			want:      false,
		},
		{
			name:      "no reset time",
			state:     domain.CardStateGreen,
			resetTime: nil,
			lastGreen: ptrTime(at(10, 18, 0, 0)),
			now:       at(15, 9, 0, 0),
			want:      false,
		},
		{
			name:      "no recorded green transition",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: nil,
			now:       at(15, 9, 0, 0),
			want:      false,
		},
		{
			name:      "green yesterday evening, just after window",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(14, 18, 0, 0)),
			now:       at(15, 8, 1, 0),
			want:      true,
		},
		{
			name:      "fresh mark after today's window",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(15, 8, 30, 0)),
			now:       at(15, 8, 45, 0),
			want:      false,
		},
		{
			name:      "window not open yet",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(15, 7, 0, 0)),
			now:       at(15, 7, 30, 0),
			want:      false,
		},
		{
			name:      "marked before window, window now open",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(15, 7, 0, 0)),
			now:       at(15, 8, 5, 0),
			want:      true,
		},
		{
			name:      "exactly at boundary",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(14, 12, 0, 0)),
			now:       at(15, 8, 0, 0),
			want:      true,
		},
		{
			name:      "one second before boundary",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(14, 12, 0, 0)),
			now:       at(15, 7, 59, 59),
			want:      false,
		},
		{
			name:      "marked exactly at window today",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(15, 8, 0, 0)),
			now:       at(15, 9, 0, 0),
			want:      true,
		},
		{
			name:      "many days since last green",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)),
			now:       at(15, 8, 0, 0),
			want:      true,
		},
		{
			name:      "green yesterday, before window today",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(14, 18, 0, 0)),
			now:       at(15, 6, 0, 0),
			want:      false,
		},
		{
			name:      "last green in the future",
			state:     domain.CardStateGreen,
			resetTime: eight,
			lastGreen: ptrTime(at(16, 7, 0, 0)),
			now:       at(15, 9, 0, 0),
			want:      false,
		},
		{
			name:      "midnight reset time",
			state:     domain.CardStateGreen,
			resetTime: &domain.TimeOfDay{},
			lastGreen: ptrTime(at(14, 23, 59, 0)),
			now:       at(15, 0, 0, 0),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ShouldReset(tt.state, tt.resetTime, tt.lastGreen, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldReset_RedNeverResets(t *testing.T) {
	last := at(1, 0, 0, 0)
	for h := 0; h < 24; h++ {
		for _, rt := range []*domain.TimeOfDay{nil, {Hour: h}} {
			now := at(15, h, 30, 0)
			assert.False(t, service.ShouldReset(domain.CardStateRed, rt, &last, now), "hour %d", h)
		}
	}
}

func TestShouldReset_EvaluatesLastGreenInNowLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	eight := &domain.TimeOfDay{Hour: 8}

	// 23:30 UTC on the 14th is 08:30 on the 15th in Tokyo: a fresh mark after
	// the Tokyo window opened.
	last := time.Date(2026, 5, 14, 23, 30, 0, 0, time.UTC)
	now := time.Date(2026, 5, 15, 9, 0, 0, 0, tokyo)
	assert.False(t, service.ShouldReset(domain.CardStateGreen, eight, &last, now))

	// Read in UTC the same instant lands on the previous day and would reset.
	nowUTC := time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC)
	assert.True(t, service.ShouldReset(domain.CardStateGreen, eight, &last, nowUTC))
}
