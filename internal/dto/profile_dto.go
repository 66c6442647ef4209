package dto

// CreateProfileRequest is the registration follow-up step. Creating a
// profile is an upsert so a client can safely retry it after a partial
// registration failure.
type CreateProfileRequest struct {
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfileRequest merges only the fields that are present.
type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name"`
	PhoneNumber       *string `json:"phone_number"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

type UploadPictureResponse struct {
	URL string `json:"url"`
}

// SessionResponse describes the current session state and which client
// routes it permits. The mobile client treats this as the single source of
// truth for routing.
type SessionResponse struct {
	State         string   `json:"state"`
	AllowedRoutes []string `json:"allowed_routes"`
	RedirectTo    string   `json:"redirect_to"`
}
