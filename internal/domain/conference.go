package domain

import (
	"context"
	"time"

	"conferencecentral/internal/query"
)

// Defaults applied when a conference is created without the optional fields.
var (
	DefaultConferenceCity   = "Default City"
	DefaultConferenceTopics = []string{"Default", "Topic"}
)

// Conference represents a conference owned by exactly one profile.
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	City           string     `json:"city"`
	Topics         []string   `json:"topics"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConferenceWithOrganizer bundles a conference with its owner's display name.
type ConferenceWithOrganizer struct {
	Conference           *Conference `json:"conference"`
	OrganizerDisplayName string      `json:"organizer_display_name"`
}

// ConferenceInput carries caller-supplied conference fields. Nil or empty
// means "not supplied": creation fills defaults, update leaves the stored
// value untouched.
type ConferenceInput struct {
	Name         string
	Description  string
	City         string
	Topics       []string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// ConferenceUpdate is the per-column update set handed to the repository.
// Nil fields are not written.
type ConferenceUpdate struct {
	Name        *string
	Description *string
	City        *string
	Topics      []string
	StartDate   *time.Time
	EndDate     *time.Time
	Month       *int
}

// ConferenceRepository defines the interface for conference storage
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	// GetByIDs returns the conferences for the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Conference, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Conference, error)
	// Query executes a compiled filter plan, honoring its ordering contract.
	Query(ctx context.Context, plan *query.Plan) ([]*Conference, error)
	// Update applies the supplied columns in a single statement and returns
	// the updated row.
	Update(ctx context.Context, id string, upd *ConferenceUpdate) (*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= 5.
	ListNearlySoldOut(ctx context.Context) ([]*Conference, error)
}

// RegistrationRepository is the seat-accounting ledger. Register and
// Unregister run as one transaction spanning the registration row and the
// conference seat counter.
type RegistrationRepository interface {
	// Register adds the profile to the conference and takes one seat.
	// Returns ErrNotFound if the conference is absent, ErrAlreadyRegistered
	// or ErrNoSeatsAvailable on precondition failure.
	Register(ctx context.Context, conferenceID, profileID string) error
	// Unregister removes the profile and returns the seat. Returns false
	// (no error) when the profile was not registered.
	Unregister(ctx context.Context, conferenceID, profileID string) (bool, error)
	// ListConferenceIDsByProfile returns the profile's attending set in
	// registration order.
	ListConferenceIDsByProfile(ctx context.Context, profileID string) ([]string, error)
}

// ConferenceService defines conference CRUD and query operations.
type ConferenceService interface {
	CreateConference(ctx context.Context, ownerID string, in *ConferenceInput) (*Conference, error)
	GetConference(ctx context.Context, conferenceID string) (*ConferenceWithOrganizer, error)
	UpdateConference(ctx context.Context, callerID, conferenceID string, in *ConferenceInput) (*Conference, error)
	QueryConferences(ctx context.Context, filters []query.Filter) ([]*ConferenceWithOrganizer, error)
	ListConferencesCreated(ctx context.Context, callerID string) ([]*ConferenceWithOrganizer, error)
}

// RegistrationService defines attendee registration operations.
type RegistrationService interface {
	RegisterForConference(ctx context.Context, conferenceID, profileID string) error
	// UnregisterFromConference returns false when the profile was not
	// registered; that is a no-op, not an error.
	UnregisterFromConference(ctx context.Context, conferenceID, profileID string) (bool, error)
	ListRegisteredConferences(ctx context.Context, profileID string) ([]*ConferenceWithOrganizer, error)
}
