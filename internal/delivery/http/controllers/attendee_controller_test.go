package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

const testConferenceID = "1b4e28ba-2fa1-4d3b-a3f5-ef19a5a9e6b1"

type mockRegistrationService struct {
	registerErr   error
	unregistered  bool
	unregisterErr error
	conferences   []*domain.ConferenceWithOrganizer
	listErr       error
}

func (m *mockRegistrationService) RegisterForConference(ctx context.Context, conferenceID, profileID string) error {
	return m.registerErr
}

func (m *mockRegistrationService) UnregisterFromConference(ctx context.Context, conferenceID, profileID string) (bool, error) {
	return m.unregistered, m.unregisterErr
}

func (m *mockRegistrationService) ListRegisteredConferences(ctx context.Context, profileID string) ([]*domain.ConferenceWithOrganizer, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.conferences, nil
}

func testControllerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.SetUserID(req.Context(), "u1"))
}

func TestAttendeeController_Register(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			wantStatus: http.StatusCreated,
			wantBody:   "registered",
		},
		{
			name:       "conference not found",
			serviceErr: domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already registered",
			serviceErr: fmt.Errorf("%w: already registered for this conference", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "sold out",
			serviceErr: fmt.Errorf("%w: no seats available", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAttendeeController(testControllerLogger(), &mockRegistrationService{registerErr: tt.serviceErr})

			req := authedRequest(http.MethodPost, "/conferences/"+testConferenceID+"/registration")
			req.SetPathValue("conferenceID", testConferenceID)
			w := httptest.NewRecorder()

			ctrl.Register(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantBody != "" {
				var resp struct {
					Data RegistrationResponse `json:"data"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Data.Status != tt.wantBody {
					t.Errorf("expected status %q, got %q", tt.wantBody, resp.Data.Status)
				}
			}
		})
	}
}

func TestAttendeeController_Register_InvalidID(t *testing.T) {
	ctrl := NewAttendeeController(testControllerLogger(), &mockRegistrationService{})

	req := authedRequest(http.MethodPost, "/conferences/not-a-uuid/registration")
	req.SetPathValue("conferenceID", "not-a-uuid")
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAttendeeController_Register_Unauthorized(t *testing.T) {
	ctrl := NewAttendeeController(testControllerLogger(), &mockRegistrationService{})

	req := httptest.NewRequest(http.MethodPost, "/conferences/"+testConferenceID+"/registration", nil)
	req.SetPathValue("conferenceID", testConferenceID)
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAttendeeController_Unregister(t *testing.T) {
	tests := []struct {
		name       string
		removed    bool
		wantStatus string
	}{
		{name: "was registered", removed: true, wantStatus: "unregistered"},
		{name: "was not registered", removed: false, wantStatus: "not_registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAttendeeController(testControllerLogger(), &mockRegistrationService{unregistered: tt.removed})

			req := authedRequest(http.MethodDelete, "/conferences/"+testConferenceID+"/registration")
			req.SetPathValue("conferenceID", testConferenceID)
			w := httptest.NewRecorder()

			ctrl.Unregister(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}
			var resp struct {
				Data RegistrationResponse `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Data.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Data.Status)
			}
		})
	}
}

func TestAttendeeController_ListAttending_Success(t *testing.T) {
	svc := &mockRegistrationService{
		conferences: []*domain.ConferenceWithOrganizer{
			{Conference: &domain.Conference{ID: testConferenceID, Name: "GopherCon"}, OrganizerDisplayName: "Alice"},
		},
	}
	ctrl := NewAttendeeController(testControllerLogger(), svc)

	req := authedRequest(http.MethodGet, "/conferences/attending")
	w := httptest.NewRecorder()

	ctrl.ListAttending(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestAttendeeController_ListAttending_Error(t *testing.T) {
	ctrl := NewAttendeeController(testControllerLogger(), &mockRegistrationService{listErr: errors.New("service error")})

	req := authedRequest(http.MethodGet, "/conferences/attending")
	w := httptest.NewRecorder()

	ctrl.ListAttending(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
