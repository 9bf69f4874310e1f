package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type mockConferenceService struct {
	conference *domain.Conference
	result     *domain.ConferenceWithOrganizer
	results    []*domain.ConferenceWithOrganizer
	err        error
	gotFilters []query.Filter
	gotInput   *domain.ConferenceInput
}

func (m *mockConferenceService) CreateConference(ctx context.Context, ownerID string, in *domain.ConferenceInput) (*domain.Conference, error) {
	m.gotInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.conference, nil
}

func (m *mockConferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockConferenceService) UpdateConference(ctx context.Context, callerID, conferenceID string, in *domain.ConferenceInput) (*domain.Conference, error) {
	m.gotInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.conference, nil
}

func (m *mockConferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	m.gotFilters = filters
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockConferenceService) ListConferencesCreated(ctx context.Context, callerID string) ([]*domain.ConferenceWithOrganizer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func TestConferenceController_CreateConference(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"GopherCon","city":"Denver","max_attendees":100}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "name required",
			body:       `{"city":"Denver"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad start date",
			body:       `{"name":"GopherCon","start_date":"July 2026"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative max attendees",
			body:       `{"name":"GopherCon","max_attendees":-1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockConferenceService{conference: &domain.Conference{ID: testConferenceID, Name: "GopherCon"}}
			ctrl := NewConferenceController(testControllerLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/conferences", strings.NewReader(tt.body))
			req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
			w := httptest.NewRecorder()

			ctrl.CreateConference(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestConferenceController_QueryConferences(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := &mockConferenceService{
			results: []*domain.ConferenceWithOrganizer{
				{Conference: &domain.Conference{ID: testConferenceID, Name: "GopherCon"}, OrganizerDisplayName: "Alice"},
			},
		}
		ctrl := NewConferenceController(testControllerLogger(), svc)

		body := `{"filters":[{"field":"CITY","operator":"EQ","value":"London"}]}`
		req := httptest.NewRequest(http.MethodPost, "/conferences/query", strings.NewReader(body))
		req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()

		ctrl.QueryConferences(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
		if len(svc.gotFilters) != 1 || svc.gotFilters[0].Field != "CITY" {
			t.Errorf("expected CITY filter to reach the service, got %+v", svc.gotFilters)
		}
	})

	t.Run("multiple inequality fields rejected", func(t *testing.T) {
		svc := &mockConferenceService{err: query.ErrMultipleInequalityFields}
		ctrl := NewConferenceController(testControllerLogger(), svc)

		body := `{"filters":[{"field":"MONTH","operator":"GT","value":"3"},{"field":"MAX_ATTENDEES","operator":"LT","value":"50"}]}`
		req := httptest.NewRequest(http.MethodPost, "/conferences/query", strings.NewReader(body))
		req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()

		ctrl.QueryConferences(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("filter missing operator rejected before service", func(t *testing.T) {
		svc := &mockConferenceService{}
		ctrl := NewConferenceController(testControllerLogger(), svc)

		body := `{"filters":[{"field":"CITY","value":"London"}]}`
		req := httptest.NewRequest(http.MethodPost, "/conferences/query", strings.NewReader(body))
		req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()

		ctrl.QueryConferences(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		if svc.gotFilters != nil {
			t.Error("expected request validation to stop the call before the service")
		}
	})
}

func TestConferenceController_GetConference(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := NewConferenceController(testControllerLogger(), &mockConferenceService{err: domain.ErrNotFound})

		req := authedRequest(http.MethodGet, "/conferences/"+testConferenceID)
		req.SetPathValue("conferenceID", testConferenceID)
		w := httptest.NewRecorder()

		ctrl.GetConference(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := NewConferenceController(testControllerLogger(), &mockConferenceService{})

		req := authedRequest(http.MethodGet, "/conferences/xyz")
		req.SetPathValue("conferenceID", "xyz")
		w := httptest.NewRecorder()

		ctrl.GetConference(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		svc := &mockConferenceService{
			result: &domain.ConferenceWithOrganizer{
				Conference:           &domain.Conference{ID: testConferenceID, Name: "GopherCon"},
				OrganizerDisplayName: "Alice",
			},
		}
		ctrl := NewConferenceController(testControllerLogger(), svc)

		req := authedRequest(http.MethodGet, "/conferences/"+testConferenceID)
		req.SetPathValue("conferenceID", testConferenceID)
		w := httptest.NewRecorder()

		ctrl.GetConference(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var resp struct {
			Data *domain.ConferenceWithOrganizer `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Data.OrganizerDisplayName != "Alice" {
			t.Errorf("expected organizer %q, got %q", "Alice", resp.Data.OrganizerDisplayName)
		}
	})
}
