package importer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/tower"
	"WindSE/internal/history"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Handler struct {
	Runs *history.Recorder
}

// openUpload reads the "file" form field as a workbook. On failure it has
// already written the response.
func openUpload(w http.ResponseWriter, r *http.Request) (*excelize.File, bool) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return nil, false
	}
	return f, true
}

func closeBook(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Warn("close workbook")
	}
}

// Collection prices the collection system described by an uploaded
// workbook with cable_specs, rsmeans and optional inputs sheets.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	f, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer closeBook(f)

	input, err := ReadCollection(f)
	if err != nil {
		http.Error(w, "Import error: "+err.Error(), http.StatusBadRequest)
		return
	}
	res, err := bos.Collection{}.Compute(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "collection", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Tower analyzes the tower in the uploaded sections sheet. The hub_height_m
// form value is required; foundation_height_m is optional.
func (h *Handler) Tower(w http.ResponseWriter, r *http.Request) {
	hub, err := strconv.ParseFloat(r.FormValue("hub_height_m"), 64)
	if err != nil {
		http.Error(w, "hub_height_m required", http.StatusBadRequest)
		return
	}
	f, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer closeBook(f)

	sec, err := ReadSections(f)
	if err != nil {
		http.Error(w, "Import error: "+err.Error(), http.StatusBadRequest)
		return
	}
	input := tower.Case{HubHeightM: hub, Sections: &sec}
	if v := r.FormValue("foundation_height_m"); v != "" {
		if input.FoundationHeightM, err = strconv.ParseFloat(v, 64); err != nil {
			http.Error(w, "Invalid foundation_height_m", http.StatusBadRequest)
			return
		}
	}
	res, err := tower.Analyze(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "tower", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
