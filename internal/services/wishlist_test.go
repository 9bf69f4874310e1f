package services

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"
)

func newWishlistService(wishRepo *mockWishlistRepository, sessRepo *mockSessionRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo:   wishRepo,
		sessionRepo:    sessRepo,
		contextTimeout: testTimeout,
	}
}

func TestWishlistService_AddToWishlist(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		addErr    error
		wantErr   error
	}{
		{name: "success", sessionID: "s1"},
		{name: "session missing", sessionID: "missing", wantErr: domain.ErrNotFound},
		{name: "already wishlisted", sessionID: "s1", addErr: domain.ErrAlreadyWishlisted, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessRepo := &mockSessionRepository{
				sessions: map[string]*domain.Session{"s1": {ID: "s1", Name: "Talk"}},
			}
			svc := newWishlistService(&mockWishlistRepository{addErr: tt.addErr}, sessRepo)

			err := svc.AddToWishlist(context.Background(), "u1", tt.sessionID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWishlistService_RemoveFromWishlist_NoOp(t *testing.T) {
	svc := newWishlistService(&mockWishlistRepository{removeOK: false}, &mockSessionRepository{})
	removed, err := svc.RemoveFromWishlist(context.Background(), "u1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for session not in wishlist")
	}
}

func TestWishlistService_ListWishlistSessions(t *testing.T) {
	wishRepo := &mockWishlistRepository{sessionIDs: []string{"s2", "gone", "s1"}}
	sessRepo := &mockSessionRepository{
		sessions: map[string]*domain.Session{
			"s1": {ID: "s1", Name: "First"},
			"s2": {ID: "s2", Name: "Second"},
		},
	}
	svc := newWishlistService(wishRepo, sessRepo)

	sessions, err := svc.ListWishlistSessions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected deleted session skipped, got %d sessions", len(sessions))
	}
	if sessions[0].ID != "s2" || sessions[1].ID != "s1" {
		t.Errorf("expected insertion order preserved, got %v", []string{sessions[0].ID, sessions[1].ID})
	}
}
