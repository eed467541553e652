package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodPut:
		var body struct {
			Day   string  `json:"day"`
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Day == "" {
			body.Day = localDayString(time.Now())
		}
		entry, err := s.logs.RecordWeight(ctx, body.Day, body.Value, body.Unit)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodGet:
		day := dayQuery(r, "day")
		entry, err := s.logs.WeightOn(ctx, day)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"day": day, "entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	days := intQuery(r, "days", 14)
	items, err := s.logs.RecentWeights(r.Context(), localDayString(time.Now()), days)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodPost:
		var body struct {
			Day      string  `json:"day"`
			Calories float64 `json:"calories"`
			ProteinG float64 `json:"proteinG"`
			FatG     float64 `json:"fatG"`
			CarbsG   float64 `json:"carbsG"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Day == "" {
			body.Day = localDayString(time.Now())
		}
		entry, err := s.logs.RecordIntake(ctx, body.Day, body.Calories, body.ProteinG, body.FatG, body.CarbsG)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodGet:
		day := dayQuery(r, "day")
		total, err := s.logs.DayIntake(ctx, day)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"day": day, "total": total})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleIntakeUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	deleted, err := s.logs.UndoLastIntake(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
