package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "macrotrend/internal/adapter/http"
	"macrotrend/internal/adapter/postgres"
	"macrotrend/internal/app"
	"macrotrend/internal/config"
)

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")
	cfgPath := os.Getenv("CONFIG_PATH")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	logSvc := app.NewLogService(db, db, cfg.AllowOverwriteSameDay)
	planSvc, err := app.NewPlanService(db, db, db, db, cfg.Engine)
	if err != nil {
		log.Fatalf("plan service: %v", err)
	}
	authSvc := app.NewAuthService(db, sessionRepo)

	oidcCfg, err := adapthttp.NewOIDC(context.Background(),
		os.Getenv("OIDC_ISSUER"),
		os.Getenv("OIDC_CLIENT_ID"),
		os.Getenv("OIDC_CLIENT_SECRET"),
		os.Getenv("OIDC_REDIRECT_URL"),
	)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(logSvc, planSvc, authSvc, oidcCfg, webDir).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
