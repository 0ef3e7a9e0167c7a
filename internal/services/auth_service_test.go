package services

import (
	"errors"
	"strings"
	"testing"
)

func TestDeleteAdminRejectsSelf(t *testing.T) {
	svc := NewAuthService(nil, nil)

	// The self-check runs before any lookup, so no repository is needed.
	err := svc.DeleteAdmin("2b1f9c3a-0000-0000-0000-000000000000", "2b1f9c3a-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrSelfDelete) {
		t.Errorf("expected ErrSelfDelete, got %v", err)
	}
}

func TestDuplicateRegistrationErrorMessage(t *testing.T) {
	err := &DuplicateRegistrationError{RegistrationNumber: "CRI-890123-1"}
	if !strings.Contains(err.Error(), "CRI-890123-1") {
		t.Errorf("message should carry the existing number: %q", err.Error())
	}

	var target *DuplicateRegistrationError
	if !errors.As(err, &target) {
		t.Error("errors.As must match DuplicateRegistrationError")
	}
}

func TestCategoryConflictErrorMessage(t *testing.T) {
	err := &CategoryConflictError{
		EventID:   "9f3a1b2c-0000-0000-0000-000000000000",
		EventName: "Cricket Championship",
		Category:  "cricket",
	}
	msg := err.Error()
	if !strings.Contains(msg, "cricket") || !strings.Contains(msg, "Cricket Championship") {
		t.Errorf("message should name the category and the occupying event: %q", msg)
	}
}
