package domain

import (
	"context"
	"strings"
	"time"
)

// Defaults applied when a session is created without the optional fields.
const (
	DefaultSessionHighlights = "Default"
	DefaultSessionDuration   = 30
	DefaultSessionSpeaker    = "Default"
	DefaultSessionStartTime  = 0
)

// SessionTypeWorkshop is the canonical tag excluded by the
// "no workshops before 7pm" query.
const SessionTypeWorkshop = "WORKSHOP"

// Session represents a talk within a conference.
// swagger:model Session
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	Highlights    string     `json:"highlights"`
	Speaker       string     `json:"speaker"`
	TypeOfSession string     `json:"type_of_session"`
	Date          *time.Time `json:"date"`
	// StartTime is an HHMM integer (e.g. 1330); 0 means no time specified.
	StartTime int `json:"start_time"`
	// Duration is in minutes.
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeSessionType upper-cases a session type tag to its canonical form.
func NormalizeSessionType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// ValidateStartTime applies the HHMM validity rule: a value whose minute
// component is in [60,99] is treated as "no time specified" and coerced to 0,
// as are values past 2359. Valid values pass through unchanged. This silently
// discards likely-typo times (1865 becomes 0); kept for compatibility with
// existing clients.
func ValidateStartTime(t int) int {
	if t < 0 || t > 2359 {
		return 0
	}
	if t%100 > 59 {
		return 0
	}
	return t
}

// SessionInput carries caller-supplied session fields. Zero values mean
// "not supplied" and receive defaults on create.
type SessionInput struct {
	Name          string
	Highlights    string
	Speaker       string
	TypeOfSession string
	Date          *time.Time
	StartTime     *int
	Duration      *int
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	// ListByConferenceIDOrdered returns the conference's sessions ordered by
	// date then start time, for the schedule view.
	ListByConferenceIDOrdered(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	// ListByDurationBetween returns sessions with min < duration < max
	// (strict bounds), ordered by duration.
	ListByDurationBetween(ctx context.Context, conferenceID string, minDuration, maxDuration int) ([]*Session, error)
	// ListBySpeaker searches across all conferences.
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	// ListStartingBefore returns sessions across all conferences with
	// start_time < the given HHMM value, ordered by start_time.
	ListStartingBefore(ctx context.Context, startTime int) ([]*Session, error)
	// ListBySpeakerAndConference scopes a speaker search to one conference.
	ListBySpeakerAndConference(ctx context.Context, speaker, conferenceID string) ([]*Session, error)
}

// WishlistRepository manages a profile's saved-session set.
type WishlistRepository interface {
	// Add returns ErrAlreadyWishlisted when the session is already saved.
	Add(ctx context.Context, profileID, sessionID string) error
	// Remove returns false (no error) when the session was not saved.
	Remove(ctx context.Context, profileID, sessionID string) (bool, error)
	// ListSessionIDsByProfile returns the wishlist in insertion order.
	ListSessionIDsByProfile(ctx context.Context, profileID string) ([]string, error)
}

// SessionService defines session CRUD and query operations.
type SessionService interface {
	CreateSession(ctx context.Context, callerID, conferenceID string, in *SessionInput) (*Session, error)
	ListConferenceSessions(ctx context.Context, conferenceID string) ([]*Session, error)
	ListSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListSessionsByDuration(ctx context.Context, conferenceID string, minDuration, maxDuration int) ([]*Session, error)
	ListSessionsBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	// ListNonWorkshopSessionsBeforeSeven returns sessions starting before
	// 19:00 that are not workshops, ordered by start time.
	ListNonWorkshopSessionsBeforeSeven(ctx context.Context) ([]*Session, error)
	// GetConferenceSchedule returns the caller's wishlisted sessions within
	// the conference, ordered by date then start time.
	GetConferenceSchedule(ctx context.Context, profileID, conferenceID string) ([]*Session, error)
}

// WishlistService defines wishlist membership operations.
type WishlistService interface {
	AddToWishlist(ctx context.Context, profileID, sessionID string) error
	RemoveFromWishlist(ctx context.Context, profileID, sessionID string) (bool, error)
	ListWishlistSessions(ctx context.Context, profileID string) ([]*Session, error)
}
