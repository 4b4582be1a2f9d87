package servo

import (
	"encoding/json"
	"net/http"

	"WindSE/internal/history"
)

// Request is a power curve request. Rotor coefficients default to the Heier
// surface.
type Request struct {
	Input      `yaml:",inline"`
	Heier      Heier   `json:"heier" yaml:"heier"`
	MeanWindMS float64 `json:"mean_wind_m_s" yaml:"mean_wind_m_s"`
	WeibullK   float64 `json:"weibull_k" yaml:"weibull_k"`
	LossFactor float64 `json:"loss_factor" yaml:"loss_factor"`
}

type Response struct {
	Result
	AEPkWh float64 `json:"aep_kwh,omitempty"`
}

func Run(req Request) (Response, error) {
	res, err := Regulate(req.Input, req.Heier)
	if err != nil {
		return Response{}, err
	}
	out := Response{Result: res}
	if req.MeanWindMS > 0 {
		out.AEPkWh, err = AEP(res.VSpline, res.PSpline, req.MeanWindMS, req.WeibullK, req.LossFactor)
		if err != nil {
			return Response{}, err
		}
	}
	return out, nil
}

type Handler struct {
	Runs *history.Recorder
}

func (h *Handler) PowerCurve(w http.ResponseWriter, r *http.Request) {
	var input Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Runs.Record(r, "powercurve", input, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
