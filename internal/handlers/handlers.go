package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kchen52/CardSpendTracker/internal/aggregate"
	"github.com/kchen52/CardSpendTracker/internal/backup"
	"github.com/kchen52/CardSpendTracker/internal/database"
)

type Handler struct {
	repo     *database.Repository
	pipeline *aggregate.Pipeline
	manager  *backup.Manager
	files    *backup.FileStore
}

func New(repo *database.Repository, pipeline *aggregate.Pipeline, manager *backup.Manager, files *backup.FileStore) *Handler {
	return &Handler{
		repo:     repo,
		pipeline: pipeline,
		manager:  manager,
		files:    files,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// urlID parses the {id} route parameter, writing a 400 itself when the
// value is not a valid id.
func urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
