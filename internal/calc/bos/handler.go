package bos

import (
	"encoding/json"
	"errors"
	"net/http"

	"WindSE/internal/history"
)

type Handler struct {
	Runs *history.Recorder
}

func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	var input CollectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Collection{}.Compute(input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrMissingKey) || errors.Is(err, ErrWrongType) {
			status = http.StatusBadRequest
		}
		http.Error(w, "Calculation error: "+err.Error(), status)
		return
	}
	h.Runs.Record(r, "collection", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
