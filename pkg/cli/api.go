package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mchmarny/scorekit/pkg/data"
	"github.com/mchmarny/scorekit/pkg/rank"
)

func makeRouter(db *sql.DB, defaultK int) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/sets", listSetsAPIHandler(db))
	mux.HandleFunc("GET /api/sets/{name}", getSetAPIHandler(db))
	mux.HandleFunc("GET /api/sets/{name}/top", topSetAPIHandler(db, defaultK))
	mux.HandleFunc("GET /api/sets/{name}/median", medianSetAPIHandler(db))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSetError maps store and ranking errors onto HTTP statuses.
func writeSetError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, data.ErrSetNotFound):
		writeError(w, http.StatusNotFound, "set not found: "+name)
	case errors.Is(err, rank.ErrEmptyInput):
		writeError(w, http.StatusUnprocessableEntity, "set is empty: "+name)
	default:
		slog.Error("failed to read set", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read set")
	}
}

func queryParamInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func listSetsAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		list, err := data.ListSets(db)
		if err != nil {
			slog.Error("failed to list sets", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list sets")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func getSetAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		s, err := data.GetSet(db, name)
		if err != nil {
			writeSetError(w, name, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Items())
	}
}

func topSetAPIHandler(db *sql.DB, defaultK int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		k, err := queryParamInt(r, "k", defaultK)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid k")
			return
		}

		s, err := data.GetSet(db, name)
		if err != nil {
			writeSetError(w, name, err)
			return
		}
		items, err := s.TopK(k)
		if err != nil {
			writeSetError(w, name, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func medianSetAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		s, err := data.GetSet(db, name)
		if err != nil {
			writeSetError(w, name, err)
			return
		}
		med, err := s.Median()
		if err != nil {
			writeSetError(w, name, err)
			return
		}
		writeJSON(w, http.StatusOK, med)
	}
}
