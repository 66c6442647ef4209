package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/dto"
)

// Session states as the client's router sees them. A fresh client is in a
// transient initializing state until it has asked this service once; from
// then on the response here decides which screens are reachable.
const (
	SessionUnauthenticated   = "unauthenticated"
	SessionAuthenticated     = "authenticated"
	SessionProfileIncomplete = "profile_incomplete"
)

var publicRoutes = []string{"/login", "/register"}
var privateRoutes = []string{
	"/category/Work",
	"/category/Personal",
	"/category/Shopping",
	"/profile",
}

type SessionService struct {
	profiles *ProfileService
}

func NewSessionService(profiles *ProfileService) *SessionService {
	return &SessionService{profiles: profiles}
}

// Describe derives the session state for the given identity, or the
// unauthenticated state when userID is uuid.Nil. An authenticated user
// whose profile-creation step never completed lands in a distinct
// recoverable state that routes to profile setup instead of the app.
func (s *SessionService) Describe(userID uuid.UUID) (*dto.SessionResponse, error) {
	if userID == uuid.Nil {
		return &dto.SessionResponse{
			State:         SessionUnauthenticated,
			AllowedRoutes: publicRoutes,
			RedirectTo:    "/login",
		}, nil
	}

	if _, err := s.profiles.Get(userID); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return &dto.SessionResponse{
				State:         SessionProfileIncomplete,
				AllowedRoutes: []string{"/profile/setup"},
				RedirectTo:    "/profile/setup",
			}, nil
		}
		return nil, err
	}

	return &dto.SessionResponse{
		State:         SessionAuthenticated,
		AllowedRoutes: privateRoutes,
		RedirectTo:    "/category/Work",
	}, nil
}
