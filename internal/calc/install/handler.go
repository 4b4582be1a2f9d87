package install

import (
	"encoding/json"
	"net/http"

	"WindSE/internal/history"
)

type Handler struct {
	Runs *history.Recorder
}

func (h *Handler) ProcessTimes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Default().Entries())
}

func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Plan(req)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "install", req, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
