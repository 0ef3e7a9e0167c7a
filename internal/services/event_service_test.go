package services

import (
	"testing"
	"time"

	"zenith-backend/internal/models"
)

func TestIsRegistrationOpen(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name        string
		isActive    bool
		isPublished bool
		now         time.Time
		want        bool
	}{
		{"active published before deadline", true, true, deadline.Add(-time.Hour), true},
		{"exactly at deadline", true, true, deadline, true},
		{"after deadline", true, true, deadline.Add(time.Second), false},
		{"unpublished", true, false, deadline.Add(-time.Hour), false},
		{"unpublished past deadline", true, false, deadline.Add(time.Hour), false},
		{"archived", false, true, deadline.Add(-time.Hour), false},
		{"archived past deadline", false, true, deadline.Add(time.Hour), false},
		{"archived and unpublished", false, false, deadline.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &models.Event{
				IsActive:             tt.isActive,
				IsPublished:          tt.isPublished,
				RegistrationDeadline: deadline,
			}
			if got := IsRegistrationOpen(event, tt.now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFullWithCount(t *testing.T) {
	limit := 16

	tests := []struct {
		name  string
		max   *int
		count int64
		want  bool
	}{
		{"unlimited is never full", nil, 100000, false},
		{"below capacity", &limit, 15, false},
		{"at capacity", &limit, 16, true},
		{"over capacity", &limit, 17, true},
		{"empty event", &limit, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &models.Event{MaxParticipants: tt.max}
			if got := IsFullWithCount(event, tt.count); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
