package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/dto"
)

func TestGetProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.Get(uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Get() error = %v, want ErrProfileNotFound", err)
	}
}

func TestCreateProfileUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	userID := uuid.New()

	first, err := svc.Create(userID, "ann@x.com", &dto.CreateProfileRequest{
		DisplayName: "Ann",
		PhoneNumber: "+15551230000",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.DisplayName != "Ann" {
		t.Errorf("expected Ann, got %q", first.DisplayName)
	}

	// Retrying the registration follow-up overwrites instead of failing.
	_, err = svc.Create(userID, "ann@x.com", &dto.CreateProfileRequest{
		DisplayName: "Annabel",
		PhoneNumber: "+15551239999",
	})
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}

	got, err := svc.Get(userID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DisplayName != "Annabel" || got.PhoneNumber != "+15551239999" {
		t.Errorf("expected overwritten profile, got %+v", got)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	if _, err := svc.Create(uuid.New(), "a@x.com", &dto.CreateProfileRequest{
		DisplayName: "",
		PhoneNumber: "+15551230000",
	}); !errors.Is(err, ErrFieldsRequired) {
		t.Errorf("empty name: error = %v, want ErrFieldsRequired", err)
	}

	if _, err := svc.Create(uuid.New(), "a@x.com", &dto.CreateProfileRequest{
		DisplayName: "Ann",
		PhoneNumber: "not-a-phone",
	}); !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("bad phone: error = %v, want ErrInvalidPhone", err)
	}
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	userID := uuid.New()

	if _, err := svc.Create(userID, "ann@x.com", &dto.CreateProfileRequest{
		DisplayName: "Ann",
		PhoneNumber: "+15551230000",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	name := "Annabel"
	updated, err := svc.Update(userID, &dto.UpdateProfileRequest{DisplayName: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.DisplayName != "Annabel" {
		t.Errorf("expected updated name, got %q", updated.DisplayName)
	}
	if updated.PhoneNumber != "+15551230000" {
		t.Errorf("untouched field changed: %q", updated.PhoneNumber)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("expected update timestamp at or after creation")
	}

	badPhone := "invalid"
	if _, err := svc.Update(userID, &dto.UpdateProfileRequest{PhoneNumber: &badPhone}); !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("bad phone update: error = %v, want ErrInvalidPhone", err)
	}

	if _, err := svc.Update(uuid.New(), &dto.UpdateProfileRequest{DisplayName: &name}); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown user: error = %v, want ErrProfileNotFound", err)
	}
}

func TestFindUserByPhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	if _, err := svc.FindUserByPhone("+15551230000"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUserByPhone() error = %v, want ErrUserNotFound", err)
	}

	seedProfile(t, db, uuid.New(), "Ann", "+15551230000")
	seedProfile(t, db, uuid.New(), "Bob", "+15559990000")

	got, err := svc.FindUserByPhone("+15551230000")
	if err != nil {
		t.Fatalf("FindUserByPhone() error = %v", err)
	}
	if got.DisplayName != "Ann" {
		t.Errorf("expected Ann, got %q", got.DisplayName)
	}
}
