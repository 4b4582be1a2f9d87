package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Input names the report and carries any of the three calculations to run
// into it.
type Input struct {
	Project    string               `json:"project"`
	Author     string               `json:"author"`
	Title      string               `json:"title"`
	Notes      string               `json:"notes"`
	Tower      *tower.Case          `json:"tower,omitempty"`
	PowerCurve *servo.Request       `json:"power_curve,omitempty"`
	Collection *bos.CollectionInput `json:"collection,omitempty"`
}

// Results holds what Build computed; nil fields were not requested.
type Results struct {
	Tower      *tower.Result
	PowerCurve *servo.Response
	Collection *bos.CollectionResult
}

func Build(in Input) (Document, Results, error) {
	doc := Document{Title: in.Title, Project: in.Project, Author: in.Author, Notes: in.Notes}
	var out Results
	if in.Tower != nil {
		res, err := tower.Analyze(*in.Tower)
		if err != nil {
			return Document{}, Results{}, err
		}
		out.Tower = &res
		doc.Sections = append(doc.Sections, Tower(res)...)
	}
	if in.PowerCurve != nil {
		res, err := servo.Run(*in.PowerCurve)
		if err != nil {
			return Document{}, Results{}, err
		}
		out.PowerCurve = &res
		doc.Sections = append(doc.Sections, PowerCurve(res)...)
		if doc.Chart, err = PowerCurvePNG(res.Result, DefaultChartSize[0], DefaultChartSize[1]); err != nil {
			return Document{}, Results{}, err
		}
	}
	if in.Collection != nil {
		res, err := bos.Collection{}.Compute(*in.Collection)
		if err != nil {
			return Document{}, Results{}, err
		}
		out.Collection = &res
		doc.Sections = append(doc.Sections, Collection(res)...)
	}
	return doc, out, nil
}

// Workbook returns one workbook per computed result, keyed by kind.
func Workbook(res Results) (map[string]*excelize.File, error) {
	out := map[string]*excelize.File{}
	fail := func(err error) (map[string]*excelize.File, error) {
		for _, f := range out {
			f.Close()
		}
		return nil, err
	}
	if res.Tower != nil {
		f, err := TowerXLSX(*res.Tower)
		if err != nil {
			return fail(err)
		}
		out["tower"] = f
	}
	if res.PowerCurve != nil {
		f, err := PowerCurveXLSX(res.PowerCurve.Result)
		if err != nil {
			return fail(err)
		}
		out["power_curve"] = f
	}
	if res.Collection != nil {
		f, err := CollectionXLSX(*res.Collection)
		if err != nil {
			return fail(err)
		}
		out["collection"] = f
	}
	return out, nil
}

type Handler struct{}

func decode(w http.ResponseWriter, r *http.Request) (Document, Results, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Document{}, Results{}, false
	}
	doc, res, err := Build(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return Document{}, Results{}, false
	}
	return doc, res, true
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	doc, _, ok := decode(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		log.WithError(err).Error("render pdf")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	buf.WriteTo(w)
}

// Spreadsheet exports the requested calculation as XLSX. The kind query
// parameter picks tower, power_curve or collection when several were run.
func (h *Handler) Spreadsheet(w http.ResponseWriter, r *http.Request) {
	_, res, ok := decode(w, r)
	if !ok {
		return
	}
	books, err := Workbook(res)
	if err != nil {
		log.WithError(err).Error("build workbook")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	defer func() {
		for _, f := range books {
			f.Close()
		}
	}()
	kind := r.URL.Query().Get("kind")
	f, found := books[kind]
	if kind == "" && len(books) == 1 {
		for k, b := range books {
			kind, f, found = k, b, true
		}
	}
	if !found {
		http.Error(w, "Unknown or ambiguous kind", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+kind+".xlsx\"")
	if err := f.Write(w); err != nil {
		log.WithError(err).Error("write workbook")
	}
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	var input servo.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := servo.Run(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	png, err := PowerCurvePNG(res.Result, DefaultChartSize[0], DefaultChartSize[1])
	if err != nil {
		log.WithError(err).Error("render chart")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
