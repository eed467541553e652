// Package adapthttp implements the HTTP adapter for the application. It is
// a thin presentation layer: every number it serves comes out of the engine
// through the application services, and no decision logic lives here.
package adapthttp

import (
	"net/http"

	"macrotrend/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	logs    *app.LogService
	plan    *app.PlanService
	authSvc *app.AuthService
	oidc    OIDC
	webDir  string

	// disableAuth skips the session gate; set only by tests.
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ls *app.LogService, ps *app.PlanService, as *app.AuthService, oidc OIDC, webDir string) *Server {
	return &Server{logs: ls, plan: ps, authSvc: as, oidc: oidc, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.HandleFunc("/config", s.handleConfig)

	protected := http.NewServeMux()
	protected.HandleFunc("/log/weight", s.handleWeight)
	protected.HandleFunc("/log/weight/recent", s.handleWeightRecent)
	protected.HandleFunc("/log/intake", s.handleIntake)
	protected.HandleFunc("/log/intake/undo-last", s.handleIntakeUndoLast)

	protected.HandleFunc("/plan/trend", s.handleTrend)
	protected.HandleFunc("/plan/tdee", s.handleTDEE)
	protected.HandleFunc("/plan/target", s.handleTarget)
	protected.HandleFunc("/plan/goal", s.handleGoal)
	protected.HandleFunc("/plan/report", s.handleReport)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
