package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	conferenceRepo   domain.ConferenceRepository
	profileRepo      domain.ProfileRepository
	taskQueue        domain.TaskQueue
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService backed by the
// registration ledger.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		conferenceRepo:   conferenceRepo,
		profileRepo:      profileRepo,
		taskQueue:        taskQueue,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) RegisterForConference(ctx context.Context, conferenceID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.Register(ctx, conferenceID, profileID); err != nil {
		return err
	}
	s.enqueueAnnouncementRefresh(ctx)
	return nil
}

func (s *registrationService) UnregisterFromConference(ctx context.Context, conferenceID, profileID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	removed, err := s.registrationRepo.Unregister(ctx, conferenceID, profileID)
	if err != nil {
		return false, err
	}
	if removed {
		s.enqueueAnnouncementRefresh(ctx)
	}
	return removed, nil
}

// enqueueAnnouncementRefresh asks the worker to rebuild the sold-out
// announcement after a seat count changed. Registration already succeeded,
// so a queue failure is only logged.
func (s *registrationService) enqueueAnnouncementRefresh(ctx context.Context) {
	task := &domain.Task{Type: domain.TaskSetAnnouncement}
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		s.logger.Error("failed to enqueue announcement refresh", "err", err)
	}
}

func (s *registrationService) ListRegisteredConferences(ctx context.Context, profileID string) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confIDs, err := s.registrationRepo.ListConferenceIDsByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	confsByID, err := s.conferenceRepo.GetByIDs(ctx, confIDs)
	if err != nil {
		return nil, fmt.Errorf("get registered conferences: %w", err)
	}

	ownerIDs := make([]string, 0, len(confsByID))
	seen := make(map[string]struct{}, len(confsByID))
	for _, c := range confsByID {
		if _, ok := seen[c.OwnerID]; ok {
			continue
		}
		seen[c.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, c.OwnerID)
	}
	owners, err := s.profileRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("get conference owners: %w", err)
	}

	// Preserve registration order; a registration pointing at a deleted
	// conference is skipped rather than failing the whole listing.
	result := make([]*domain.ConferenceWithOrganizer, 0, len(confIDs))
	for _, id := range confIDs {
		conf, ok := confsByID[id]
		if !ok {
			s.logger.Warn("registration references missing conference", "conference_id", id, "profile_id", profileID)
			continue
		}
		owner, ok := owners[conf.OwnerID]
		if !ok {
			return nil, fmt.Errorf("conference %s references missing owner profile %s", conf.ID, conf.OwnerID)
		}
		result = append(result, &domain.ConferenceWithOrganizer{
			Conference:           conf,
			OrganizerDisplayName: owner.DisplayName,
		})
	}
	return result, nil
}
