package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = "id, conference_id, name, highlights, speaker, type_of_session, date, start_time, duration, created_at, updated_at"

func scanSession(s interface{ Scan(...any) error }) (*domain.Session, error) {
	sess := &domain.Session{}
	var dateNull sql.NullTime
	err := s.Scan(
		&sess.ID, &sess.ConferenceID, &sess.Name, &sess.Highlights, &sess.Speaker,
		&sess.TypeOfSession, &dateNull, &sess.StartTime, &sess.Duration,
		&sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateNull.Valid {
		sess.Date = &dateNull.Time
	}
	return sess, nil
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, name, highlights, speaker, type_of_session, date, start_time, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.ConferenceID, s.Name, s.Highlights, s.Speaker, s.TypeOfSession,
		s.Date, s.StartTime, s.Duration, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE id = $1`, sessionColumns)
	sess, err := scanSession(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE conference_id = $1 ORDER BY created_at`, sessionColumns)
	return r.list(ctx, q, conferenceID)
}

func (r *sessionRepository) ListByConferenceIDOrdered(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE conference_id = $1 ORDER BY date, start_time`, sessionColumns)
	return r.list(ctx, q, conferenceID)
}

func (r *sessionRepository) ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE conference_id = $1 AND type_of_session = $2 ORDER BY created_at`, sessionColumns)
	return r.list(ctx, q, conferenceID, typeOfSession)
}

func (r *sessionRepository) ListByDurationBetween(ctx context.Context, conferenceID string, minDuration, maxDuration int) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE conference_id = $1 AND duration > $2 AND duration < $3 ORDER BY duration`, sessionColumns)
	return r.list(ctx, q, conferenceID, minDuration, maxDuration)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE speaker = $1 ORDER BY created_at`, sessionColumns)
	return r.list(ctx, q, speaker)
}

func (r *sessionRepository) ListStartingBefore(ctx context.Context, startTime int) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE start_time < $1 ORDER BY start_time`, sessionColumns)
	return r.list(ctx, q, startTime)
}

func (r *sessionRepository) ListBySpeakerAndConference(ctx context.Context, speaker, conferenceID string) ([]*domain.Session, error) {
	q := fmt.Sprintf(`SELECT %s FROM sessions WHERE speaker = $1 AND conference_id = $2 ORDER BY created_at`, sessionColumns)
	return r.list(ctx, q, speaker, conferenceID)
}

func (r *sessionRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
