package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/storage"
)

var (
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrUploadTooLarge   = errors.New("uploaded file is too large")
	ErrUnsupportedImage = errors.New("uploaded file is not a supported image")
	ErrUploadFailed     = errors.New("failed to store uploaded file")
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type MediaService struct {
	store     storage.ObjectStore
	baseURL   string
	maxUpload int64
}

func NewMediaService(store storage.ObjectStore, baseURL string, maxUpload int64) *MediaService {
	return &MediaService{
		store:     store,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxUpload: maxUpload,
	}
}

// ProfilePicturePath is the deterministic object name for a user's picture.
// One picture per user: a re-upload overwrites the previous one and keeps
// the same URL.
func ProfilePicturePath(userID uuid.UUID) string {
	return "profile-pictures/" + userID.String()
}

// UploadProfilePicture stores the image bytes and returns the durable
// public URL they will be served from.
func (s *MediaService) UploadProfilePicture(userID uuid.UUID, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if s.maxUpload > 0 && int64(len(data)) > s.maxUpload {
		return "", ErrUploadTooLarge
	}

	contentType := http.DetectContentType(data)
	if !imageTypes[contentType] {
		return "", ErrUnsupportedImage
	}

	name := ProfilePicturePath(userID)
	if _, err := s.store.Put(name, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return s.baseURL + "/files/" + name, nil
}
