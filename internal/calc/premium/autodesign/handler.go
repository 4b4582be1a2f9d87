package autodesign

import (
	"encoding/json"
	"net/http"

	"WindSE/internal/history"
)

type Handler struct {
	Runs *history.Recorder
}

func (h *Handler) Tower(w http.ResponseWriter, r *http.Request) {
	var input TowerAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Tower(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "tower_sizing", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
