package domain

import (
	"context"
	"time"
)

// Tee-shirt size codes. Stored as strings; invalid input falls back to NOT_SPECIFIED.
const TeeShirtSizeNotSpecified = "NOT_SPECIFIED"

// TeeShirtSizes is the closed set of accepted tee-shirt size codes.
var TeeShirtSizes = map[string]struct{}{
	TeeShirtSizeNotSpecified: {},
	"XS_M": {}, "XS_W": {},
	"S_M": {}, "S_W": {},
	"M_M": {}, "M_W": {},
	"L_M": {}, "L_W": {},
	"XL_M": {}, "XL_W": {},
	"XXL_M": {}, "XXL_W": {},
	"XXXL_M": {}, "XXXL_W": {},
}

// Profile represents a registered user of the conference system.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	TeeShirtSize string    `json:"tee_shirt_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile. ID is set by the repository on create.
func NewProfile(email, displayName string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		Email:        email,
		DisplayName:  displayName,
		TeeShirtSize: TeeShirtSizeNotSpecified,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// GetByIDs returns the profiles for the given IDs, keyed by ID.
	// Missing IDs are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

// ProfileService defines profile self-service operations.
type ProfileService interface {
	GetProfile(ctx context.Context, callerID string) (*Profile, error)
	// SaveProfile applies the supplied fields (empty values are ignored) and
	// returns the updated profile.
	SaveProfile(ctx context.Context, callerID, displayName, teeShirtSize string) (*Profile, error)
}

// AuthService issues and verifies caller identity.
type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (*Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
}

// TokenVerifier verifies a token and returns the authenticated profile ID.
type TokenVerifier interface {
	Verify(token string) (profileID string, err error)
}
