package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type wishlistService struct {
	wishlistRepo   domain.WishlistRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewWishlistService creates a WishlistService with the given repositories.
func NewWishlistService(
	wishlistRepo domain.WishlistRepository,
	sessionRepo domain.SessionRepository,
	timeout time.Duration,
) domain.WishlistService {
	return &wishlistService{
		wishlistRepo:   wishlistRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *wishlistService) AddToWishlist(ctx context.Context, profileID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}
	return s.wishlistRepo.Add(ctx, profileID, sessionID)
}

func (s *wishlistService) RemoveFromWishlist(ctx context.Context, profileID, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.wishlistRepo.Remove(ctx, profileID, sessionID)
}

func (s *wishlistService) ListWishlistSessions(ctx context.Context, profileID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessionIDs, err := s.wishlistRepo.ListSessionIDsByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	// The wishlist spans conferences; fetch each saved session and keep
	// insertion order, dropping entries whose session has been deleted.
	sessions := make([]*domain.Session, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		sess, err := s.sessionRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get wishlisted session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}
