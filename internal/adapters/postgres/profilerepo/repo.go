package profilerepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
)

// Repo is a Postgres implementation of profilerepo.Repository. Rows are
// created by the auth provider's sign-up trigger; this repository only reads
// and patches them.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `
	user_id,
	email,
	full_name,
	phone,
	role,
	location,
	latitude,
	longitude,
	services_offered,
	trust_level,
	badges,
	verified,
	created_at
`

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (domain.Profile, error) {
	if r.pool == nil {
		return domain.Profile{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE user_id = $1
	`, string(subject))
	return scanProfile(row)
}

func (r *Repo) Update(ctx context.Context, subject domain.SubjectID, p profilerepo.Patch) (domain.Profile, error) {
	if r.pool == nil {
		return domain.Profile{}, errors.New("nil postgres pool")
	}

	var out domain.Profile
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := scanProfile(tx.QueryRow(ctx, `
			SELECT `+profileColumns+`
			FROM profiles
			WHERE user_id = $1
			FOR UPDATE
		`, string(subject)))
		if err != nil {
			return err
		}

		next := applyPatch(existing, p)

		var lat, lng *float64
		if next.Coordinates != nil {
			lat, lng = &next.Coordinates.Latitude, &next.Coordinates.Longitude
		}
		ct, err := tx.Exec(ctx, `
			UPDATE profiles
			SET full_name = $2,
			    phone = $3,
			    location = $4,
			    latitude = $5,
			    longitude = $6,
			    services_offered = $7
			WHERE user_id = $1
		`,
			string(subject),
			next.FullName,
			next.Phone,
			next.Location,
			lat,
			lng,
			next.ServicesOffered,
		)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return profilerepo.ErrNotFound
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

func (r *Repo) ListVolunteers(ctx context.Context) ([]domain.Profile, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE role IN ('volunteer', 'ngo')
		  AND verified = true
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// --- helpers ---

func applyPatch(p domain.Profile, patch profilerepo.Patch) domain.Profile {
	if patch.FullName != nil {
		v := *patch.FullName
		p.FullName = &v
	}
	if patch.Phone != nil {
		if *patch.Phone == "" {
			p.Phone = nil
		} else {
			v := *patch.Phone
			p.Phone = &v
		}
	}
	if patch.Location != nil {
		if *patch.Location == "" {
			p.Location = nil
		} else {
			v := *patch.Location
			p.Location = &v
		}
	}
	if patch.Coordinates != nil {
		c := *patch.Coordinates
		p.Coordinates = &c
	} else if patch.ClearCoordinates {
		p.Coordinates = nil
	}
	if patch.ServicesOffered != nil {
		p.ServicesOffered = append([]string(nil), (*patch.ServicesOffered)...)
	}
	return p
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (domain.Profile, error) {
	var (
		userID          string
		email           string
		fullName        *string
		phone           *string
		role            string
		location        *string
		latitude        *float64
		longitude       *float64
		servicesOffered []string
		trustLevel      int
		badges          []string
		verified        bool
		createdAt       time.Time
	)
	if err := row.Scan(
		&userID,
		&email,
		&fullName,
		&phone,
		&role,
		&location,
		&latitude,
		&longitude,
		&servicesOffered,
		&trustLevel,
		&badges,
		&verified,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, profilerepo.ErrNotFound
		}
		return domain.Profile{}, err
	}

	var coords *domain.Coordinates
	if latitude != nil && longitude != nil {
		coords = &domain.Coordinates{Latitude: *latitude, Longitude: *longitude}
	}
	return domain.Profile{
		UserID:          domain.SubjectID(userID),
		Email:           email,
		FullName:        fullName,
		Phone:           phone,
		Role:            domain.ParseRole(role),
		Location:        location,
		Coordinates:     coords,
		ServicesOffered: servicesOffered,
		TrustLevel:      trustLevel,
		BadgesEarned:    len(badges),
		Badges:          badges,
		Verified:        verified,
		CreatedAt:       createdAt.UTC(),
	}, nil
}
