package services

import (
	"reflect"
	"testing"
	"time"

	"zenith-backend/internal/models"

	"github.com/google/uuid"
)

func TestFormatMarathonNumber(t *testing.T) {
	tests := []struct {
		year    int64
		ordinal int64
		want    string
	}{
		{2026, 1, "MAR20260001"},
		{2026, 42, "MAR20260042"},
		{2026, 9999, "MAR20269999"},
		// Beyond four digits the ordinal simply widens.
		{2026, 12345, "MAR202612345"},
	}

	for _, tt := range tests {
		if got := FormatMarathonNumber(tt.year, tt.ordinal); got != tt.want {
			t.Errorf("FormatMarathonNumber(%d, %d) = %q, want %q", tt.year, tt.ordinal, got, tt.want)
		}
	}
}

func TestBuildMarathonCSVRows(t *testing.T) {
	created := time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	entries := []models.Marathon{
		{
			ID:                    uuid.New(),
			RegistrationNumber:    "MAR20260001",
			Name:                  "Alice",
			Email:                 "alice@college.edu",
			Phone:                 "9876543210",
			Age:                   21,
			Gender:                "female",
			Category:              "10k",
			Institution:           "NIT",
			City:                  "Pune",
			EmergencyContactName:  "Bob",
			EmergencyContactPhone: "9123456780",
			BloodGroup:            "O+",
			TShirtSize:            "M",
			Status:                "confirmed",
			PaymentStatus:         "completed",
			CreatedAt:             created,
		},
	}

	rows := BuildMarathonCSVRows(entries)
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(rows[1]) {
		t.Fatalf("header has %d columns, row has %d", len(rows[0]), len(rows[1]))
	}

	want := []string{
		"MAR20260001", "Alice", "alice@college.edu", "9876543210", "21", "female", "10k",
		"NIT", "Pune", "Bob", "9123456780", "O+", "M", "confirmed", "completed",
		"2026-01-20T08:00:00Z",
	}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}
