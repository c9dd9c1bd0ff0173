package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/geo"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/gotrue"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/groq"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/httpapi"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/jwtauth"
	memauthprovider "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/authprovider"
	memaidrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/aidrepo"
	memprofilerepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/profilerepo"
	memstoryrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/storyrepo"
	memwellnessrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/wellnessrepo"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres"
	pgaidrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/aidrepo"
	pgprofilerepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/profilerepo"
	pgstoryrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/storyrepo"
	pgwellnessrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/wellnessrepo"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/stories"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/wellness"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	platformclock "github.com/Harsh-Shrivastava1/sahara/internal/platform/clock"
	"github.com/Harsh-Shrivastava1/sahara/internal/platform/config"
	"github.com/Harsh-Shrivastava1/sahara/internal/platform/logging"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/authprovider"
	aidrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
	profilerepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
	storyrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
	wellnessrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid logging config: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	clk := platformclock.NewSystemClock()

	var (
		profileRepo  profilerepoport.Repository
		aidRepo      aidrepoport.Repository
		storyRepo    storyrepoport.Repository
		wellnessRepo wellnessrepoport.Repository
		cleanup      func()
	)

	var memProfiles *memprofilerepo.Repo

	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Fatal("postgres connection failed", zap.Error(err))
		}
		cleanup = pool.Close

		profileRepo = pgprofilerepo.NewRepo(pool)
		aidRepo = pgaidrepo.NewRepo(pool)
		storyRepo = pgstoryrepo.NewRepo(pool)
		wellnessRepo = pgwellnessrepo.NewRepo(pool)
	default:
		memProfiles = memprofilerepo.NewRepo()
		profileRepo = memProfiles
		aidRepo = memaidrepo.NewRepo()
		storyRepo = memstoryrepo.NewRepo()
		wellnessRepo = memwellnessrepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	var provider authprovider.Provider
	switch cfg.AuthMode {
	case "dev":
		fake := memauthprovider.NewProvider()
		// The real deployment creates the profile row with a provider-side
		// trigger; the dev fake seeds the memory repo in its place.
		if memProfiles != nil {
			fake.OnSignUp = func(subject domain.SubjectID, email string, metadata map[string]any) {
				memProfiles.Seed(profileFromSignUp(subject, email, metadata, clk.Now()))
			}
		}
		provider = fake
	default:
		client := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.AuthBaseURL,
			AnonKey: cfg.AuthAPIKey,
		})
		verified, err := jwtauth.New(client, []byte(cfg.JWTSecret))
		if err != nil {
			logger.Fatal("auth setup failed", zap.Error(err))
		}
		provider = verified
	}

	gateway := groq.NewClient(groq.Config{
		BaseURL: cfg.GroqBaseURL,
		APIKey:  cfg.GroqAPIKey,
		Model:   cfg.GroqModel,
	})
	locator := geo.NewLocator(geo.Config{
		BaseURL: cfg.GeocoderBaseURL,
		Timeout: cfg.GeocoderTimeout,
	})

	sessions := session.NewManager(provider, profileRepo, clk, logger)
	aidSvc := aid.NewService(aidRepo, wellnessRepo, profileRepo, gateway, locator, clk, logger)
	storySvc := stories.NewService(storyRepo, clk)
	wellnessSvc := wellness.NewService(wellnessRepo, gateway, clk, logger)

	api := httpapi.NewServer(sessions, aidSvc, storySvc, wellnessSvc, logger)
	handler := httpapi.NewRouter(api, httpapi.NewSessionMiddleware(sessions))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func profileFromSignUp(subject domain.SubjectID, email string, metadata map[string]any, now time.Time) domain.Profile {
	p := domain.Profile{
		UserID:          subject,
		Email:           email,
		Role:            domain.RoleUser,
		ServicesOffered: []string{},
		Badges:          []string{},
		CreatedAt:       now,
	}
	if v, ok := metadata["full_name"].(string); ok && v != "" {
		p.FullName = &v
	}
	if v, ok := metadata["phone"].(string); ok && v != "" {
		p.Phone = &v
	}
	if v, ok := metadata["role"].(string); ok && v != "" {
		p.Role = domain.ParseRole(v)
	}
	if v, ok := metadata["location"].(string); ok && v != "" {
		p.Location = &v
	}
	return p
}
