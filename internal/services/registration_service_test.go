package services

import (
	"reflect"
	"testing"
	"time"

	"zenith-backend/internal/models"

	"github.com/google/uuid"
)

func TestResolvePromotedFields(t *testing.T) {
	tests := []struct {
		name     string
		formData map[string]interface{}
		want     map[string]string
		wantErr  string
	}{
		{
			name: "canonical keys",
			formData: map[string]interface{}{
				"email":       "alice@college.edu",
				"name":        "Alice",
				"phone":       "9876543210",
				"institution": "NIT",
				"city":        "Pune",
			},
			want: map[string]string{
				"email":       "alice@college.edu",
				"name":        "Alice",
				"phone":       "9876543210",
				"institution": "NIT",
				"city":        "Pune",
			},
		},
		{
			name: "alias fallbacks",
			formData: map[string]interface{}{
				"Email ID":     "bob@college.edu",
				"Team Name":    "Strikers",
				"Mobile":       "9123456780",
				"College Name": "IIT",
			},
			want: map[string]string{
				"email":       "bob@college.edu",
				"name":        "Strikers",
				"phone":       "9123456780",
				"institution": "IIT",
				"city":        "",
			},
		},
		{
			name: "first non-empty alias wins",
			formData: map[string]interface{}{
				"email": "",
				"Email": "carol@college.edu",
				"name":  "Carol",
			},
			want: map[string]string{
				"email":       "carol@college.edu",
				"name":        "Carol",
				"phone":       "",
				"institution": "",
				"city":        "",
			},
		},
		{
			name: "numeric phone from json",
			formData: map[string]interface{}{
				"email": "dan@college.edu",
				"name":  "Dan",
				"phone": float64(9876543210),
			},
			want: map[string]string{
				"email":       "dan@college.edu",
				"name":        "Dan",
				"phone":       "9876543210",
				"institution": "",
				"city":        "",
			},
		},
		{
			name:     "missing email",
			formData: map[string]interface{}{"name": "Eve"},
			wantErr:  "email is required",
		},
		{
			name:     "missing name",
			formData: map[string]interface{}{"email": "eve@college.edu"},
			wantErr:  "name is required",
		},
		{
			name: "whitespace-only required value",
			formData: map[string]interface{}{
				"email": "   ",
				"name":  "Frank",
			},
			wantErr: "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePromotedFields(tt.formData)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventNumberPrefix(t *testing.T) {
	tests := []struct {
		eventName string
		want      string
	}{
		{"Cricket Championship", "CRI"},
		{"football", "FOO"},
		{"  chess  ", "CHE"},
		{"Go", "GO"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EventNumberPrefix(tt.eventName); got != tt.want {
			t.Errorf("EventNumberPrefix(%q) = %q, want %q", tt.eventName, got, tt.want)
		}
	}
}

func TestFormatRegistrationNumber(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		at        time.Time
		ordinal   int64
		want      string
	}{
		{
			name:      "six digit slice of epoch ms",
			eventName: "Cricket Championship",
			at:        time.UnixMilli(1234567890123),
			ordinal:   7,
			want:      "CRI-890123-7",
		},
		{
			name:      "zero pads short remainder",
			eventName: "Basketball",
			at:        time.UnixMilli(1000000000042),
			ordinal:   1,
			want:      "BAS-000042-1",
		},
		{
			name:      "ordinal is not padded",
			eventName: "Volleyball",
			at:        time.UnixMilli(1234567123456),
			ordinal:   128,
			want:      "VOL-123456-128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRegistrationNumber(tt.eventName, tt.at, tt.ordinal); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRegistrationCSVRows(t *testing.T) {
	created := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	regs := []models.Registration{
		{
			ID:                 uuid.New(),
			RegistrationNumber: "CRI-890123-1",
			Name:               "Alice",
			Email:              "alice@college.edu",
			Phone:              "9876543210",
			Institution:        "NIT",
			City:               "Pune",
			Status:             "confirmed",
			PaymentStatus:      "completed",
			Amount:             500,
			CreatedAt:          created,
			FormData: map[string]interface{}{
				"Email":        "alice@college.edu", // duplicates a promoted column
				"Jersey Size":  "M",
				"Dietary Note": "vegetarian",
			},
		},
		{
			ID:                 uuid.New(),
			RegistrationNumber: "CRI-890123-2",
			Name:               "Bob",
			Email:              "bob@college.edu",
			Status:             "pending",
			PaymentStatus:      "pending",
			Amount:             500,
			CreatedAt:          created,
			FormData: map[string]interface{}{
				"Jersey Size": "L",
			},
		},
	}

	rows := BuildRegistrationCSVRows(regs)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	wantHeader := []string{
		"Registration Number", "Name", "Email", "Phone", "Institution", "City",
		"Status", "Payment Status", "Amount", "Registered At",
		"Dietary Note", "Jersey Size",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	wantFirst := []string{
		"CRI-890123-1", "Alice", "alice@college.edu", "9876543210", "NIT", "Pune",
		"confirmed", "completed", "500.00", "2026-02-14T10:30:00Z",
		"vegetarian", "M",
	}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Errorf("first row = %v, want %v", rows[1], wantFirst)
	}

	// Bob has no dietary note; the column is present but empty.
	if rows[2][10] != "" || rows[2][11] != "L" {
		t.Errorf("second row extras = %v, want empty dietary note and size L", rows[2][10:])
	}
}
