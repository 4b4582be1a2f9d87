package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"WindSE/internal/auth"
	"WindSE/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Recorder stores successful calculations of authenticated users. A nil
// Recorder records nothing.
type Recorder struct {
	Repo repo.RunRepository
	Now  func() time.Time
}

func (rec *Recorder) Record(r *http.Request, kind string, input, result any) {
	if rec == nil || rec.Repo == nil {
		return
	}
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return
	}
	in, err := json.Marshal(input)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Warn("encode run input")
		return
	}
	out, err := json.Marshal(result)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Warn("encode run result")
		return
	}
	now := time.Now
	if rec.Now != nil {
		now = rec.Now
	}
	run := repo.Run{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Input:     in,
		Result:    out,
		CreatedAt: now().UTC(),
	}
	if err := rec.Repo.SaveRun(r.Context(), run); err != nil {
		log.WithError(err).WithFields(log.Fields{"kind": kind, "user_id": userID}).Error("save run")
	}
}

type Handler struct {
	Repo repo.RunRepository
}

type summary struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the caller's runs, newest first, without their payloads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := h.Repo.ListRuns(r.Context(), userID, r.URL.Query().Get("kind"), limit)
	if err != nil {
		log.WithError(err).Error("list runs")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	out := make([]summary, 0, len(runs))
	for _, run := range runs {
		out = append(out, summary{ID: run.ID, Kind: run.Kind, CreatedAt: run.CreatedAt})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	run, err := h.Repo.GetRun(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("get run")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}
