package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"conferencecentral/internal/domain"
)

type mockAuthService struct {
	profile   *domain.Profile
	signUpErr error
	token     string
	loginErr  error
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, displayName string) (*domain.Profile, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.profile, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return m.token, m.profile, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"email":"alice@example.com","password":"supersecret","display_name":"Alice"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email format",
			body:       `{"email":"not-an-email","password":"supersecret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password too short",
			body:       `{"email":"alice@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field rejected",
			body:       `{"email":"alice@example.com","password":"supersecret","admin":true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "email already registered",
			body:       `{"email":"alice@example.com","password":"supersecret"}`,
			serviceErr: fmt.Errorf("%w: email already in use", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				profile:   &domain.Profile{ID: "p1", Email: "alice@example.com", DisplayName: "Alice"},
				signUpErr: tt.serviceErr,
			}
			ctrl := NewAuthController(testControllerLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.SignUp(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantToken  string
	}{
		{
			name:       "success returns token",
			body:       `{"email":"alice@example.com","password":"supersecret"}`,
			wantStatus: http.StatusOK,
			wantToken:  "tok-123",
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong password",
			body:       `{"email":"alice@example.com","password":"wrongwrong"}`,
			serviceErr: fmt.Errorf("%w: invalid credentials", domain.ErrInvalidInput),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email":"nobody@example.com","password":"supersecret"}`,
			serviceErr: domain.ErrNotFound,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				profile:  &domain.Profile{ID: "p1", Email: "alice@example.com"},
				token:    "tok-123",
				loginErr: tt.serviceErr,
			}
			ctrl := NewAuthController(testControllerLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.Login(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantToken != "" {
				var resp struct {
					Data LoginResponse `json:"data"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Data.Token != tt.wantToken {
					t.Errorf("expected token %q, got %q", tt.wantToken, resp.Data.Token)
				}
			}
		})
	}
}
