package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencecentral/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Register runs the whole seat-accounting transition in one transaction.
// The FOR UPDATE lock on the conference row serializes concurrent
// registrations so seats_available never goes negative.
func (r *registrationRepository) Register(ctx context.Context, conferenceID, profileID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM conference_registrations WHERE conference_id = $1 AND profile_id = $2)`,
		conferenceID, profileID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}
	if seats <= 0 {
		return domain.ErrNoSeatsAvailable
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conference_registrations (conference_id, profile_id) VALUES ($1, $2)`,
		conferenceID, profileID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available - 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *registrationRepository) Unregister(ctx context.Context, conferenceID, profileID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(new(int))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM conference_registrations WHERE conference_id = $1 AND profile_id = $2`,
		conferenceID, profileID,
	)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		// Not registered: success with no effect.
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available + 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *registrationRepository) ListConferenceIDsByProfile(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT conference_id FROM conference_registrations WHERE profile_id = $1 ORDER BY created_at`,
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
