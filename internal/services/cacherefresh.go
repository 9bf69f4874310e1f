package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type cacheRefreshService struct {
	cache          domain.CacheStore
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewCacheRefreshService creates a CacheRefreshService over the given cache
// and repositories.
func NewCacheRefreshService(
	cache domain.CacheStore,
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	timeout time.Duration,
) domain.CacheRefreshService {
	return &cacheRefreshService{
		cache:          cache,
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *cacheRefreshService) RefreshAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.conferenceRepo.ListNearlySoldOut(ctx)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}
	if len(confs) == 0 {
		// Nothing nearly sold out; a stale announcement must not linger.
		if err := s.cache.Delete(ctx, domain.AnnouncementCacheKey); err != nil {
			return "", fmt.Errorf("clear announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	announcement := fmt.Sprintf(domain.AnnouncementTemplate, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.AnnouncementCacheKey, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

func (s *cacheRefreshService) RefreshFeaturedSpeaker(ctx context.Context, speaker, conferenceID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeakerAndConference(ctx, speaker, conferenceID)
	if err != nil {
		return fmt.Errorf("list sessions by speaker: %w", err)
	}
	// A speaker with a single session is not featured, and the slot keeps
	// whatever speaker was featured last.
	if len(sessions) <= 1 {
		return nil
	}
	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get conference: %w", err)
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	notice := fmt.Sprintf(domain.FeaturedSpeakerTemplate, speaker, strings.Join(names, ", "), conf.Name)
	if err := s.cache.Set(ctx, domain.FeaturedSpeakerCacheKey, notice); err != nil {
		return fmt.Errorf("set featured speaker: %w", err)
	}
	return nil
}

func (s *cacheRefreshService) GetAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.cache.Get(ctx, domain.AnnouncementCacheKey)
}

func (s *cacheRefreshService) GetFeaturedSpeaker(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.cache.Get(ctx, domain.FeaturedSpeakerCacheKey)
}
