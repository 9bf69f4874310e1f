package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, salt, display_name, tee_shirt_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Email, p.PasswordHash, p.Salt, p.DisplayName, p.TeeShirtSize, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, email, password_hash, salt, display_name, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Salt, &p.DisplayName, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, email, password_hash, salt, display_name, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Salt, &p.DisplayName, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	profiles := make(map[string]*domain.Profile)
	if len(ids) == 0 {
		return profiles, nil
	}
	query := `
		SELECT id, email, password_hash, salt, display_name, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE id = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p := &domain.Profile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Salt, &p.DisplayName, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles[p.ID] = p
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, tee_shirt_size = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.DisplayName, p.TeeShirtSize, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
