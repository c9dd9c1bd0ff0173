package storyrepo

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
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
)

// Repo is a Postgres implementation of storyrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, s domain.Story) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid story id: %w", err)
	}

	var author *string
	if s.Author != nil {
		a := string(*s.Author)
		author = &a
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO community_stories (
			id,
			author_id,
			title,
			content,
			category,
			is_anonymous,
			is_approved,
			likes_count,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		id,
		author,
		s.Title,
		s.Content,
		s.Category,
		s.Anonymous,
		s.Approved,
		s.Likes,
		s.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return storyrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.StoryID) (domain.Story, error) {
	if r.pool == nil {
		return domain.Story{}, errors.New("nil postgres pool")
	}
	sid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Story{}, storyrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, author_id, title, content, category, is_anonymous, is_approved, likes_count, created_at
		FROM community_stories
		WHERE id = $1
	`, sid)
	return scanStory(row)
}

func (r *Repo) ListApproved(ctx context.Context) ([]domain.Story, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, author_id, title, content, category, is_anonymous, is_approved, likes_count, created_at
		FROM community_stories
		WHERE is_approved = true
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) IncrementLikes(ctx context.Context, id domain.StoryID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	sid, err := uuid.Parse(string(id))
	if err != nil {
		return storyrepo.ErrNotFound
	}
	// The increment runs in the store so concurrent likes both count.
	ct, err := r.pool.Exec(ctx, `
		UPDATE community_stories
		SET likes_count = likes_count + 1
		WHERE id = $1
	`, sid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return storyrepo.ErrNotFound
	}
	return nil
}

func scanStory(row interface {
	Scan(dest ...any) error
}) (domain.Story, error) {
	var (
		id        uuid.UUID
		authorID  *string
		title     string
		content   string
		category  string
		anonymous bool
		approved  bool
		likes     int
		createdAt time.Time
	)
	if err := row.Scan(
		&id,
		&authorID,
		&title,
		&content,
		&category,
		&anonymous,
		&approved,
		&likes,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Story{}, storyrepo.ErrNotFound
		}
		return domain.Story{}, err
	}

	var author *domain.SubjectID
	if authorID != nil {
		a := domain.SubjectID(*authorID)
		author = &a
	}
	return domain.Story{
		ID:        domain.StoryID(id.String()),
		Author:    author,
		Title:     title,
		Content:   content,
		Category:  category,
		Anonymous: anonymous,
		Approved:  approved,
		Likes:     likes,
		CreatedAt: createdAt.UTC(),
	}, nil
}
