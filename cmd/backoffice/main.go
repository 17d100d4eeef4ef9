package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	adapthttp "github.com/Geovany-dotcom/Backend2/internal/adapter/http"
	"github.com/Geovany-dotcom/Backend2/internal/adapter/postgres"
	"github.com/Geovany-dotcom/Backend2/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	// Local development keeps its settings in a .env file; a missing file
	// is fine in production where the environment is set externally.
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	imagesDir := env("IMAGES_DIR", "imgs")
	webDir := env("WEB_DIR", "web")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		log.Fatalf("images dir: %v", err)
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminRepo := postgres.NewAdminRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	clientSessionRepo := postgres.NewClientSessionRepo(db)
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	authSvc := app.NewAuthService(db, adminRepo, sessionRepo, clientSessionRepo)
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("SESSION_TTL: %v", err)
		}
		authSvc = authSvc.WithSessionTTL(ttl)
	}
	catalogSvc := app.NewCatalogService(productRepo)
	orderSvc := app.NewOrderService(productRepo, orderRepo)
	reportSvc := app.NewReportService(reportRepo, productRepo, clientSessionRepo)

	srv := adapthttp.New(authSvc, catalogSvc, orderSvc, reportSvc, imagesDir, webDir)

	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		provider, err := oidc.NewProvider(context.Background(), issuer)
		if err != nil {
			log.Fatalf("oidc provider: %v", err)
		}
		srv = srv.WithOIDC(adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: oauth2.Config{
				ClientID:     os.Getenv("OIDC_CLIENT_ID"),
				ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email"},
			},
		})
	}

	// Abandoned sessions are never presented again, so ValidateSession's lazy
	// delete won't reclaim them. Sweep hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authSvc.PurgeExpiredSessions(context.Background()); err != nil {
				log.Printf("session sweep: %v", err)
			}
		}
	}()

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
