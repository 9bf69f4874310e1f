package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

// eveningStart is the HHMM boundary for the early-sessions query.
const eveningStart = 1900

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	wishlistRepo   domain.WishlistRepository
	taskQueue      domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSessionService creates a SessionService with the given repositories
// and task queue.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	wishlistRepo domain.WishlistRepository,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		wishlistRepo:   wishlistRepo,
		taskQueue:      taskQueue,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, callerID, conferenceID string, in *domain.SessionInput) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: session name is required", domain.ErrInvalidInput)
	}

	session := &domain.Session{
		ConferenceID:  conferenceID,
		Name:          in.Name,
		Highlights:    in.Highlights,
		Speaker:       in.Speaker,
		TypeOfSession: domain.NormalizeSessionType(in.TypeOfSession),
		Date:          in.Date,
	}
	if session.Highlights == "" {
		session.Highlights = domain.DefaultSessionHighlights
	}
	if session.Speaker == "" {
		session.Speaker = domain.DefaultSessionSpeaker
	}
	if in.Duration != nil {
		session.Duration = *in.Duration
	} else {
		session.Duration = domain.DefaultSessionDuration
	}
	if in.StartTime != nil {
		session.StartTime = domain.ValidateStartTime(*in.StartTime)
	} else {
		session.StartTime = domain.DefaultSessionStartTime
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// The featured-speaker check runs in the worker; session creation has
	// already succeeded by the time the task is queued.
	task := &domain.Task{
		Type: domain.TaskSetFeaturedSpeaker,
		Params: map[string]string{
			domain.TaskParamSpeaker:      session.Speaker,
			domain.TaskParamConferenceID: conferenceID,
		},
	}
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		s.logger.Error("failed to enqueue featured speaker check", "conference_id", conferenceID, "err", err)
	}
	return session, nil
}

func (s *sessionService) ListConferenceSessions(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureConferenceExists(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureConferenceExists(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByType(ctx, conferenceID, domain.NormalizeSessionType(typeOfSession))
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListSessionsByDuration(ctx context.Context, conferenceID string, minDuration, maxDuration int) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if minDuration < 0 || maxDuration < 0 || maxDuration < minDuration {
		return nil, fmt.Errorf("%w: invalid duration bounds", domain.ErrInvalidInput)
	}
	if err := s.ensureConferenceExists(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByDurationBetween(ctx, conferenceID, minDuration, maxDuration)
	if err != nil {
		return nil, fmt.Errorf("list sessions by duration: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListSessionsBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(speaker) == "" {
		return nil, fmt.Errorf("%w: speaker is required", domain.ErrInvalidInput)
	}
	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListNonWorkshopSessionsBeforeSeven(ctx context.Context) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Only the time bound goes to the database; the type exclusion is
	// applied here so the single-inequality query stays cheap.
	sessions, err := s.sessionRepo.ListStartingBefore(ctx, eveningStart)
	if err != nil {
		return nil, fmt.Errorf("list early sessions: %w", err)
	}
	result := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		if sess.TypeOfSession == domain.SessionTypeWorkshop {
			continue
		}
		result = append(result, sess)
	}
	return result, nil
}

func (s *sessionService) GetConferenceSchedule(ctx context.Context, profileID, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureConferenceExists(ctx, conferenceID); err != nil {
		return nil, err
	}
	wishlisted, err := s.wishlistRepo.ListSessionIDsByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	saved := make(map[string]struct{}, len(wishlisted))
	for _, id := range wishlisted {
		saved[id] = struct{}{}
	}

	sessions, err := s.sessionRepo.ListByConferenceIDOrdered(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list conference sessions: %w", err)
	}
	schedule := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		if _, ok := saved[sess.ID]; ok {
			schedule = append(schedule, sess)
		}
	}
	return schedule, nil
}

func (s *sessionService) ensureConferenceExists(ctx context.Context, conferenceID string) error {
	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get conference: %w", err)
	}
	return nil
}
