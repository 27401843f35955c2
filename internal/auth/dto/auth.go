package dto

import "encoding/json"

// UpdateProfileRequest carries reading-preference changes. Interests arrive
// as a comma-separated string and reading speed as a number or numeric
// string; both are normalized in the usecase.
type UpdateProfileRequest struct {
	Interests    string      `json:"interests"`
	Goals        string      `json:"goals"`
	ReadingSpeed json.Number `json:"reading_speed"`
}

// WebhookProfile is the user payload inside identity-provider sync events.
type WebhookProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// WebhookEvent is an asynchronous identity-provider sync event.
type WebhookEvent struct {
	Type string         `json:"type"` // "user.created" or "user.updated"
	Data WebhookProfile `json:"data"`
}
