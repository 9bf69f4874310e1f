package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(db *sql.DB) domain.WishlistRepository {
	return &wishlistRepository{
		DB: db,
	}
}

func (r *wishlistRepository) Add(ctx context.Context, profileID, sessionID string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO session_wishlist (profile_id, session_id) VALUES ($1, $2)`,
		profileID, sessionID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrAlreadyWishlisted
		}
		return err
	}
	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, profileID, sessionID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM session_wishlist WHERE profile_id = $1 AND session_id = $2`,
		profileID, sessionID,
	)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (r *wishlistRepository) ListSessionIDsByProfile(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT session_id FROM session_wishlist WHERE profile_id = $1 ORDER BY created_at`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
