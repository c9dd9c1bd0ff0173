package wellnessrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

// Repo is a Postgres implementation of wellnessrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, s domain.WellnessSession) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid wellness session id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO mental_health_sessions (
			id,
			user_id,
			session_type,
			content,
			sentiment,
			risk_level,
			escalated,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		id,
		string(s.Subject),
		string(s.Type),
		s.Content,
		s.Sentiment,
		string(s.RiskLevel),
		s.Escalated,
		s.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return wellnessrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) ListBySubject(ctx context.Context, subject domain.SubjectID) ([]domain.WellnessSession, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, session_type, content, sentiment, risk_level, escalated, created_at
		FROM mental_health_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, string(subject))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WellnessSession, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			userID    string
			stype     string
			content   string
			sentiment string
			riskLevel string
			escalated bool
			createdAt time.Time
		)
		if err := rows.Scan(&id, &userID, &stype, &content, &sentiment, &riskLevel, &escalated, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, domain.WellnessSession{
			ID:        domain.WellnessSessionID(id.String()),
			Subject:   domain.SubjectID(userID),
			Type:      domain.SessionType(stype),
			Content:   content,
			Sentiment: sentiment,
			RiskLevel: domain.ParseRiskLevel(riskLevel),
			Escalated: escalated,
			CreatedAt: createdAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
