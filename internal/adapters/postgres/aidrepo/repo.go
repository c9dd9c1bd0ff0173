package aidrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
)

// Repo is a Postgres implementation of aidrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const requestColumns = `
	id,
	user_id,
	title,
	description,
	category,
	priority,
	status,
	location,
	latitude,
	longitude,
	contact_info,
	people_affected,
	created_at,
	updated_at
`

func (r *Repo) Create(ctx context.Context, req domain.HelpRequest) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(req.ID))
	if err != nil {
		return fmt.Errorf("invalid help request id: %w", err)
	}

	var lat, lng *float64
	if req.Coordinates != nil {
		lat, lng = &req.Coordinates.Latitude, &req.Coordinates.Longitude
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO help_requests (
			id,
			user_id,
			title,
			description,
			category,
			priority,
			status,
			location,
			latitude,
			longitude,
			contact_info,
			people_affected,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		id,
		string(req.Requester),
		req.Title,
		req.Description,
		string(req.Category),
		string(req.Priority),
		string(req.Status),
		req.Location,
		lat,
		lng,
		req.ContactInfo,
		req.PeopleAffected,
		req.CreatedAt.UTC(),
		req.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return aidrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.HelpRequestID) (domain.HelpRequest, error) {
	if r.pool == nil {
		return domain.HelpRequest{}, errors.New("nil postgres pool")
	}
	rid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.HelpRequest{}, aidrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM help_requests
		WHERE id = $1
	`, rid)
	return scanRequest(row)
}

func (r *Repo) List(ctx context.Context, f aidrepo.Filter) ([]domain.HelpRequest, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	where := " WHERE true "
	args := []any{}
	if f.Category != "" {
		args = append(args, string(f.Category))
		where += fmt.Sprintf(" AND category = $%d ", len(args))
	}
	if f.Priority != "" {
		args = append(args, string(f.Priority))
		where += fmt.Sprintf(" AND priority = $%d ", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(" AND status = $%d ", len(args))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM help_requests
		`+where+`
		ORDER BY created_at DESC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *Repo) ListByRequester(ctx context.Context, subject domain.SubjectID) ([]domain.HelpRequest, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM help_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, string(subject))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *Repo) UpdateStatus(ctx context.Context, id domain.HelpRequestID, status domain.RequestStatus, updatedAt time.Time) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	rid, err := uuid.Parse(string(id))
	if err != nil {
		return aidrepo.ErrNotFound
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE help_requests
		SET status = $2,
		    updated_at = $3
		WHERE id = $1
	`, rid, string(status), updatedAt.UTC())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return aidrepo.ErrNotFound
	}
	return nil
}

// --- helpers ---

func collectRequests(rows pgx.Rows) ([]domain.HelpRequest, error) {
	out := make([]domain.HelpRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequest(row interface {
	Scan(dest ...any) error
}) (domain.HelpRequest, error) {
	var (
		id             uuid.UUID
		userID         string
		title          string
		description    string
		category       string
		priority       string
		status         string
		location       string
		latitude       *float64
		longitude      *float64
		contactInfo    string
		peopleAffected int
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := row.Scan(
		&id,
		&userID,
		&title,
		&description,
		&category,
		&priority,
		&status,
		&location,
		&latitude,
		&longitude,
		&contactInfo,
		&peopleAffected,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HelpRequest{}, aidrepo.ErrNotFound
		}
		return domain.HelpRequest{}, err
	}

	var coords *domain.Coordinates
	if latitude != nil && longitude != nil {
		coords = &domain.Coordinates{Latitude: *latitude, Longitude: *longitude}
	}
	return domain.HelpRequest{
		ID:             domain.HelpRequestID(id.String()),
		Requester:      domain.SubjectID(userID),
		Title:          title,
		Description:    description,
		Category:       domain.ParseCategory(category),
		Priority:       domain.Priority(priority),
		Status:         domain.RequestStatus(status),
		Location:       location,
		Coordinates:    coords,
		ContactInfo:    contactInfo,
		PeopleAffected: peopleAffected,
		CreatedAt:      createdAt.UTC(),
		UpdatedAt:      updatedAt.UTC(),
	}, nil
}
