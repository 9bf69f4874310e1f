package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

const conferenceColumns = "id, owner_id, name, description, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at"

func scanConference(s interface{ Scan(...any) error }) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startNull, endNull sql.NullTime
	err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.City,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO conferences (owner_id, name, description, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insert,
		c.OwnerID, c.Name, c.Description, c.City, c.StartDate, c.EndDate,
		c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return err
	}
	for i, topic := range c.Topics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO conference_topics (conference_id, position, topic) VALUES ($1, $2, $3)`,
			c.ID, i, topic,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := fmt.Sprintf(`SELECT %s FROM conferences WHERE id = $1`, conferenceColumns)
	c, err := scanConference(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachTopics(ctx, []*domain.Conference{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Conference, error) {
	confs := make(map[string]*domain.Conference)
	if len(ids) == 0 {
		return confs, nil
	}
	q := fmt.Sprintf(`SELECT %s FROM conferences WHERE id = ANY($1)`, conferenceColumns)
	rows, err := r.DB.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*domain.Conference
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs[c.ID] = c
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTopics(ctx, list); err != nil {
		return nil, err
	}
	return confs, nil
}

func (r *conferenceRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Conference, error) {
	q := fmt.Sprintf(`SELECT %s FROM conferences WHERE owner_id = $1 ORDER BY created_at DESC`, conferenceColumns)
	return r.list(ctx, q, ownerID)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	q := fmt.Sprintf(`SELECT %s FROM conferences WHERE seats_available > 0 AND seats_available <= 5 ORDER BY name`, conferenceColumns)
	return r.list(ctx, q)
}

// filterColumns maps plan fields to SQL expressions against conferences c.
var filterColumns = map[string]string{
	query.FieldCity:         "c.city",
	query.FieldMonth:        "c.month",
	query.FieldMaxAttendees: "c.max_attendees",
}

// Query renders a compiled filter plan. Scalar fields become WHERE clauses;
// topics (a repeated property) becomes an EXISTS against conference_topics,
// matching when any of the conference's topics satisfies the predicate.
func (r *conferenceRepository) Query(ctx context.Context, plan *query.Plan) ([]*domain.Conference, error) {
	where := []string{}
	args := []any{}
	n := 1
	for _, p := range plan.Predicates {
		op := p.Operator
		if op == "!=" {
			op = "<>"
		}
		if p.Field == query.FieldTopics {
			where = append(where, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM conference_topics t WHERE t.conference_id = c.id AND t.topic %s $%d)", op, n))
		} else {
			col, ok := filterColumns[p.Field]
			if !ok {
				return nil, fmt.Errorf("unsupported filter field %q", p.Field)
			}
			where = append(where, fmt.Sprintf("%s %s $%d", col, op, n))
		}
		args = append(args, p.Value)
		n++
	}

	// Ordering contract: inequality field ascending first, then name. Topics
	// has no sortable column; name ordering stands in for it.
	orderCols := make([]string, 0, 2)
	for _, f := range plan.OrderFields() {
		if f == query.FieldTopics {
			f = "name"
		}
		col := "c.name"
		if f != "name" {
			col = filterColumns[f]
		}
		if len(orderCols) > 0 && orderCols[len(orderCols)-1] == col {
			continue
		}
		orderCols = append(orderCols, col)
	}

	q := fmt.Sprintf("SELECT c.%s FROM conferences c", strings.Join(strings.Split(conferenceColumns, ", "), ", c."))
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY " + strings.Join(orderCols, ", ")

	return r.list(ctx, q, args...)
}

func (r *conferenceRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTopics(ctx, confs); err != nil {
		return nil, err
	}
	return confs, nil
}

func (r *conferenceRepository) attachTopics(ctx context.Context, confs []*domain.Conference) error {
	if len(confs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(confs))
	byID := make(map[string]*domain.Conference, len(confs))
	for _, c := range confs {
		ids = append(ids, c.ID)
		byID[c.ID] = c
		if c.Topics == nil {
			c.Topics = []string{}
		}
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT conference_id, topic FROM conference_topics WHERE conference_id = ANY($1) ORDER BY conference_id, position`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id, topic string
		if err := rows.Scan(&id, &topic); err != nil {
			return err
		}
		if c, ok := byID[id]; ok {
			c.Topics = append(c.Topics, topic)
		}
	}
	return rows.Err()
}

func (r *conferenceRepository) Update(ctx context.Context, id string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", n))
		args = append(args, *upd.City)
		n++
	}
	if upd.StartDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *upd.StartDate)
		n++
	}
	if upd.EndDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *upd.EndDate)
		n++
	}
	if upd.Month != nil {
		setClauses = append(setClauses, fmt.Sprintf("month = $%d", n))
		args = append(args, *upd.Month)
		n++
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE conferences SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), n, conferenceColumns)
	c, err := scanConference(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if upd.Topics != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM conference_topics WHERE conference_id = $1`, id); err != nil {
			return nil, err
		}
		for i, topic := range upd.Topics {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO conference_topics (conference_id, position, topic) VALUES ($1, $2, $3)`,
				id, i, topic,
			); err != nil {
				return nil, err
			}
		}
		c.Topics = upd.Topics
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if upd.Topics == nil {
		if err := r.attachTopics(ctx, []*domain.Conference{c}); err != nil {
			return nil, err
		}
	}
	return c, nil
}
