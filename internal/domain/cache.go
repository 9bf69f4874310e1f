package domain

import "context"

// Cache slot keys for the derived-data strings.
const (
	AnnouncementCacheKey    = "conference:announcement"
	FeaturedSpeakerCacheKey = "conference:featured_speaker"
)

// AnnouncementTemplate formats the nearly-sold-out announcement.
const AnnouncementTemplate = "Last chance to attend! The following conferences are nearly sold out: %s"

// FeaturedSpeakerTemplate formats the featured-speaker notice.
const FeaturedSpeakerTemplate = "Featured Speaker %s Speaking at the following sessions: %s, at the %s conference"

// CacheStore is a key-value cache with string values (infrastructure port).
type CacheStore interface {
	Set(ctx context.Context, key, value string) error
	// Get returns "" with no error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CacheRefreshService recomputes the derived-data cache slots from current
// stored state. Both operations are idempotent and safe to run repeatedly.
type CacheRefreshService interface {
	// RefreshAnnouncement scans for nearly-sold-out conferences and sets or
	// clears the announcement slot. Returns the announcement written ("" when
	// the slot was cleared).
	RefreshAnnouncement(ctx context.Context) (string, error)
	// RefreshFeaturedSpeaker overwrites the featured-speaker slot when the
	// speaker has more than one session in the conference; otherwise the slot
	// is left untouched.
	RefreshFeaturedSpeaker(ctx context.Context, speaker, conferenceID string) error
	GetAnnouncement(ctx context.Context) (string, error)
	GetFeaturedSpeaker(ctx context.Context) (string, error)
}
