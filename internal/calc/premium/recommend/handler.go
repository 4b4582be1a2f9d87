package recommend

import (
	"encoding/json"
	"net/http"

	"WindSE/internal/history"
)

type Handler struct {
	Runs *history.Recorder
}

func (h *Handler) Cable(w http.ResponseWriter, r *http.Request) {
	var input CableInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Cable(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "cable_recommend", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
