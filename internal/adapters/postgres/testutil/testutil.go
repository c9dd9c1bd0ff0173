package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres"
)

// schema is the test database schema. Production deployments own their
// migrations (the profiles table in particular is provisioned alongside the
// auth provider's sign-up trigger); this DDL only serves the contract tests.
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id          text PRIMARY KEY,
	email            text NOT NULL,
	full_name        text,
	phone            text,
	role             text NOT NULL DEFAULT 'user',
	location         text,
	latitude         double precision,
	longitude        double precision,
	services_offered text[],
	trust_level      integer NOT NULL DEFAULT 0,
	badges           text[],
	verified         boolean NOT NULL DEFAULT false,
	created_at       timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS help_requests (
	id              uuid PRIMARY KEY,
	user_id         text NOT NULL,
	title           text NOT NULL,
	description     text NOT NULL,
	category        text NOT NULL,
	priority        text NOT NULL,
	status          text NOT NULL,
	location        text NOT NULL DEFAULT '',
	latitude        double precision,
	longitude       double precision,
	contact_info    text NOT NULL DEFAULT '',
	people_affected integer NOT NULL DEFAULT 0,
	created_at      timestamptz NOT NULL,
	updated_at      timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS community_stories (
	id           uuid PRIMARY KEY,
	author_id    text,
	title        text NOT NULL,
	content      text NOT NULL,
	category     text NOT NULL,
	is_anonymous boolean NOT NULL DEFAULT true,
	is_approved  boolean NOT NULL DEFAULT false,
	likes_count  integer NOT NULL DEFAULT 0,
	created_at   timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS mental_health_sessions (
	id           uuid PRIMARY KEY,
	user_id      text NOT NULL,
	session_type text NOT NULL,
	content      text NOT NULL,
	sentiment    text NOT NULL DEFAULT 'neutral',
	risk_level   text NOT NULL DEFAULT 'low',
	escalated    boolean NOT NULL DEFAULT false,
	created_at   timestamptz NOT NULL
);
`

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL,
// applies the test schema and truncates all tables. Tests are skipped when
// the variable is unset so the postgres contract suites stay opt-in.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		TRUNCATE profiles, help_requests, community_stories, mental_health_sessions
	`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}
