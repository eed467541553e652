package adapthttp

import (
	"net/http"

	"macrotrend/internal/domain"
)

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	to := dayQuery(r, "to")
	days := intQuery(r, "days", 30)
	from, err := domain.AddDays(to, -(days - 1))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	points, err := s.plan.Trend(r.Context(), from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": to, "points": points})
}

func (s *Server) handleTDEE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	asOf := dayQuery(r, "asOf")
	est, err := s.plan.TDEE(r.Context(), asOf)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "estimate": est})
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		asOf := dayQuery(r, "asOf")
		target, err := s.plan.CurrentTarget(ctx, asOf)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if target == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "insufficient_data", "detail": "no target published yet"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "target": target})

	case http.MethodPost:
		asOf := dayQuery(r, "asOf")
		target, err := s.plan.RefreshTarget(ctx, asOf)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		status := "ok"
		if target.NeedMoreData {
			status = "more_data_needed"
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": status, "target": target})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		goal, err := s.plan.Goal(ctx)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	case http.MethodPut:
		var body domain.GoalConfig
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.plan.SetGoal(ctx, body); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": body})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	asOf := dayQuery(r, "asOf")
	days := intQuery(r, "days", 0)
	report, err := s.plan.Report(r.Context(), days, asOf)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}
