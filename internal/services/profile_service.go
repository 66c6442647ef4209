package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/dto"
	"github.com/taskmate/taskmate-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("no user found with this phone number")
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns the profile for the given identity. ErrProfileNotFound means
// the registration follow-up step never completed for this user.
func (s *ProfileService) Get(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// Create writes the profile for userID, overwriting any existing one. The
// upsert makes the registration follow-up safe to retry.
func (s *ProfileService) Create(userID uuid.UUID, email string, req *dto.CreateProfileRequest) (*models.Profile, error) {
	if req.DisplayName == "" || req.PhoneNumber == "" {
		return nil, ErrFieldsRequired
	}
	if !phoneRegex.MatchString(req.PhoneNumber) {
		return nil, ErrInvalidPhone
	}

	profile := models.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "email", "phone_number", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &profile, nil
}

// Update merges the fields present in req into the profile and stamps the
// update time. Email is immutable after profile creation.
func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, ErrFieldsRequired
		}
		updates["display_name"] = *req.DisplayName
	}
	if req.PhoneNumber != nil {
		if !phoneRegex.MatchString(*req.PhoneNumber) {
			return nil, ErrInvalidPhone
		}
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *req.ProfilePictureURL
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.Get(userID)
}

// FindUserByPhone does an exact-match lookup against profile phone numbers.
// If several profiles share a number the oldest one wins.
func (s *ProfileService) FindUserByPhone(phone string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("phone_number = ?", phone).
		Order("created_at ASC").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up phone number: %w", err)
	}
	return &profile, nil
}
