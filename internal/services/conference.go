package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	taskQueue      domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewConferenceService creates a ConferenceService with the given
// repositories and task queue.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		taskQueue:      taskQueue,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, ownerID string, in *domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: conference name is required", domain.ErrInvalidInput)
	}

	conf := &domain.Conference{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		City:        in.City,
		Topics:      in.Topics,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	// Defaults for unset optional fields.
	if conf.City == "" {
		conf.City = domain.DefaultConferenceCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string{}, domain.DefaultConferenceTopics...)
	}
	if in.MaxAttendees != nil {
		conf.MaxAttendees = *in.MaxAttendees
	}
	// Seats start at capacity; a capacity of 0 means unlimited intent was
	// never expressed, so no seats are tracked.
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}
	if conf.StartDate != nil {
		conf.Month = int(conf.StartDate.Month())
	}

	now := time.Now()
	conf.CreatedAt = now
	conf.UpdatedAt = now
	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	// Confirmation email goes through the task queue; failures must not fail
	// the creation itself.
	owner, err := s.profileRepo.GetByID(ctx, ownerID)
	if err != nil {
		s.logger.Warn("skipping confirmation email, owner profile lookup failed", "owner_id", ownerID, "err", err)
		return conf, nil
	}
	task := &domain.Task{
		Type: domain.TaskSendConfirmationEmail,
		Params: map[string]string{
			domain.TaskParamEmail:          owner.Email,
			domain.TaskParamConferenceInfo: conferenceInfo(conf),
		},
	}
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		s.logger.Error("failed to enqueue confirmation email", "conference_id", conf.ID, "err", err)
	}
	return conf, nil
}

// conferenceInfo renders the created-fields snapshot carried by the
// confirmation email task.
func conferenceInfo(c *domain.Conference) string {
	parts := []string{
		"name: " + c.Name,
		"city: " + c.City,
		"topics: " + strings.Join(c.Topics, ", "),
		fmt.Sprintf("max attendees: %d", c.MaxAttendees),
	}
	if c.StartDate != nil {
		parts = append(parts, "start date: "+c.StartDate.Format("2006-01-02"))
	}
	if c.EndDate != nil {
		parts = append(parts, "end date: "+c.EndDate.Format("2006-01-02"))
	}
	return strings.Join(parts, "; ")
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	owner, err := s.profileRepo.GetByID(ctx, conf.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get conference owner: %w", err)
	}
	return &domain.ConferenceWithOrganizer{
		Conference:           conf,
		OrganizerDisplayName: owner.DisplayName,
	}, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, callerID, conferenceID string, in *domain.ConferenceInput) (*domain.Conference, error) {
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

	// Only supplied fields overwrite stored values. The repository applies
	// the whole set in one statement so concurrent editors cannot lose
	// each other's columns.
	upd := &domain.ConferenceUpdate{}
	if in.Name != "" {
		upd.Name = &in.Name
	}
	if in.Description != "" {
		upd.Description = &in.Description
	}
	if in.City != "" {
		upd.City = &in.City
	}
	if len(in.Topics) > 0 {
		upd.Topics = in.Topics
	}
	if in.StartDate != nil {
		upd.StartDate = in.StartDate
		month := int(in.StartDate.Month())
		upd.Month = &month
	}
	if in.EndDate != nil {
		upd.EndDate = in.EndDate
	}

	updated, err := s.conferenceRepo.Update(ctx, conferenceID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return updated, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	plan, err := query.Compile(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.Query(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return s.attachOrganizers(ctx, confs)
}

func (s *conferenceService) ListConferencesCreated(ctx context.Context, callerID string) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.conferenceRepo.ListByOwnerID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by owner: %w", err)
	}
	return s.attachOrganizers(ctx, confs)
}

// attachOrganizers batch-joins owner display names onto conferences. A
// conference whose owner profile is missing indicates corrupted data and is
// surfaced as an error rather than skipped.
func (s *conferenceService) attachOrganizers(ctx context.Context, confs []*domain.Conference) ([]*domain.ConferenceWithOrganizer, error) {
	ownerIDs := make([]string, 0, len(confs))
	seen := make(map[string]struct{}, len(confs))
	for _, c := range confs {
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

	result := make([]*domain.ConferenceWithOrganizer, 0, len(confs))
	for _, c := range confs {
		owner, ok := owners[c.OwnerID]
		if !ok {
			return nil, fmt.Errorf("conference %s references missing owner profile %s", c.ID, c.OwnerID)
		}
		result = append(result, &domain.ConferenceWithOrganizer{
			Conference:           c,
			OrganizerDisplayName: owner.DisplayName,
		})
	}
	return result, nil
}
