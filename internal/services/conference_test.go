package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

func newConferenceService(confRepo *mockConferenceRepository, profileRepo *mockProfileRepository, tq *mockTaskQueue) *conferenceService {
	return &conferenceService{
		conferenceRepo: confRepo,
		profileRepo:    profileRepo,
		taskQueue:      tq,
		logger:         testLogger(),
		contextTimeout: testTimeout,
	}
}

func TestConferenceService_CreateConference_Defaults(t *testing.T) {
	confRepo := &mockConferenceRepository{}
	profileRepo := &mockProfileRepository{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1", Email: "owner@example.com", DisplayName: "Owner"},
		},
	}
	tq := &mockTaskQueue{}
	svc := newConferenceService(confRepo, profileRepo, tq)

	conf, err := svc.CreateConference(context.Background(), "u1", &domain.ConferenceInput{Name: "GopherCon"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.City != domain.DefaultConferenceCity {
		t.Errorf("expected default city %q, got %q", domain.DefaultConferenceCity, conf.City)
	}
	if len(conf.Topics) != 2 || conf.Topics[0] != "Default" || conf.Topics[1] != "Topic" {
		t.Errorf("expected default topics, got %v", conf.Topics)
	}
	if conf.MaxAttendees != 0 || conf.SeatsAvailable != 0 {
		t.Errorf("expected zero capacity and seats, got %d/%d", conf.MaxAttendees, conf.SeatsAvailable)
	}
	if conf.Month != 0 {
		t.Errorf("expected month 0 with no start date, got %d", conf.Month)
	}
	if len(tq.tasks) != 1 || tq.tasks[0].Type != domain.TaskSendConfirmationEmail {
		t.Fatalf("expected one confirmation email task, got %v", tq.tasks)
	}
	if tq.tasks[0].Params[domain.TaskParamEmail] != "owner@example.com" {
		t.Errorf("confirmation email task carries wrong recipient: %v", tq.tasks[0].Params)
	}
}

func TestConferenceService_CreateConference_SeatsAndMonth(t *testing.T) {
	confRepo := &mockConferenceRepository{}
	profileRepo := &mockProfileRepository{
		profiles: map[string]*domain.Profile{"u1": {ID: "u1", Email: "o@example.com"}},
	}
	svc := newConferenceService(confRepo, profileRepo, &mockTaskQueue{})

	start := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	max := 50
	conf, err := svc.CreateConference(context.Background(), "u1", &domain.ConferenceInput{
		Name:         "GopherCon",
		City:         "Denver",
		Topics:       []string{"Go"},
		StartDate:    &start,
		MaxAttendees: &max,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.SeatsAvailable != 50 {
		t.Errorf("expected seats to start at capacity, got %d", conf.SeatsAvailable)
	}
	if conf.Month != 6 {
		t.Errorf("expected month 6 from start date, got %d", conf.Month)
	}
}

func TestConferenceService_CreateConference_NameRequired(t *testing.T) {
	svc := newConferenceService(&mockConferenceRepository{}, &mockProfileRepository{}, &mockTaskQueue{})
	_, err := svc.CreateConference(context.Background(), "u1", &domain.ConferenceInput{Name: "  "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConferenceService_CreateConference_QueueFailureDoesNotFail(t *testing.T) {
	confRepo := &mockConferenceRepository{}
	profileRepo := &mockProfileRepository{
		profiles: map[string]*domain.Profile{"u1": {ID: "u1", Email: "o@example.com"}},
	}
	tq := &mockTaskQueue{err: errors.New("queue down")}
	svc := newConferenceService(confRepo, profileRepo, tq)

	conf, err := svc.CreateConference(context.Background(), "u1", &domain.ConferenceInput{Name: "GopherCon"})
	if err != nil {
		t.Fatalf("creation must succeed despite queue failure, got %v", err)
	}
	if conf.ID == "" {
		t.Fatal("expected created conference with ID")
	}
}

func TestConferenceService_UpdateConference(t *testing.T) {
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		callerID   string
		input      *domain.ConferenceInput
		wantErr    error
		wantMonth  *int
		wantName   bool
	}{
		{
			name:     "owner updates name",
			callerID: "u1",
			input:    &domain.ConferenceInput{Name: "New Name"},
			wantName: true,
		},
		{
			name:      "start date change recomputes month",
			callerID:  "u1",
			input:     &domain.ConferenceInput{StartDate: &start},
			wantMonth: intPtr(9),
		},
		{
			name:     "non-owner is forbidden",
			callerID: "u2",
			input:    &domain.ConferenceInput{Name: "X"},
			wantErr:  domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confRepo := &mockConferenceRepository{
				conferences: map[string]*domain.Conference{
					"c1": {ID: "c1", OwnerID: "u1", Name: "Old"},
				},
			}
			svc := newConferenceService(confRepo, &mockProfileRepository{}, &mockTaskQueue{})

			_, err := svc.UpdateConference(context.Background(), tt.callerID, "c1", tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantName && (confRepo.updateArg.Name == nil || *confRepo.updateArg.Name != "New Name") {
				t.Errorf("expected name in update set, got %+v", confRepo.updateArg)
			}
			if tt.wantMonth != nil {
				if confRepo.updateArg.Month == nil || *confRepo.updateArg.Month != *tt.wantMonth {
					t.Errorf("expected month %d in update set, got %+v", *tt.wantMonth, confRepo.updateArg.Month)
				}
			}
		})
	}
}

func TestConferenceService_QueryConferences(t *testing.T) {
	confRepo := &mockConferenceRepository{
		queryResult: []*domain.Conference{
			{ID: "c1", OwnerID: "u1", Name: "A"},
			{ID: "c2", OwnerID: "u2", Name: "B"},
		},
	}
	profileRepo := &mockProfileRepository{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1", DisplayName: "Alice"},
			"u2": {ID: "u2", DisplayName: "Bob"},
		},
	}
	svc := newConferenceService(confRepo, profileRepo, &mockTaskQueue{})

	results, err := svc.QueryConferences(context.Background(), []query.Filter{
		{Field: "CITY", Operator: "EQ", Value: "London"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].OrganizerDisplayName != "Alice" || results[1].OrganizerDisplayName != "Bob" {
		t.Errorf("organizer names not attached: %+v", results)
	}
	if confRepo.queryPlan == nil || len(confRepo.queryPlan.Predicates) != 1 {
		t.Errorf("expected compiled plan with one predicate, got %+v", confRepo.queryPlan)
	}
}

func TestConferenceService_QueryConferences_InvalidFilter(t *testing.T) {
	svc := newConferenceService(&mockConferenceRepository{}, &mockProfileRepository{}, &mockTaskQueue{})
	_, err := svc.QueryConferences(context.Background(), []query.Filter{
		{Field: "CITY", Operator: "GT", Value: "a"},
		{Field: "MONTH", Operator: "LT", Value: "6"},
	})
	if !errors.Is(err, query.ErrMultipleInequalityFields) {
		t.Fatalf("expected ErrMultipleInequalityFields, got %v", err)
	}
}

func TestConferenceService_QueryConferences_MissingOwner(t *testing.T) {
	confRepo := &mockConferenceRepository{
		queryResult: []*domain.Conference{{ID: "c1", OwnerID: "ghost", Name: "A"}},
	}
	svc := newConferenceService(confRepo, &mockProfileRepository{profiles: map[string]*domain.Profile{}}, &mockTaskQueue{})

	_, err := svc.QueryConferences(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for conference with missing owner profile")
	}
}

func intPtr(v int) *int { return &v }
