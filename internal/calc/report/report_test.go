package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func testInput() Input {
	return Input{
		Project: "Demo wind farm",
		Author:  "Engineering",
		Tower: &tower.Case{
			HubHeightM: 80,
			Sections: &tower.Sections{
				HeightM:          []float64{40, 40},
				OuterDiameterM:   []float64{6, 5.5, 5},
				WallThicknessM:   fill(2, 0.05),
				OutfittingFactor: fill(2, 1.07),
				E_Pa:             fill(2, 2e11),
				G_Pa:             fill(2, 8e10),
				SigmaY_Pa:        fill(2, 3.45e8),
				RhoKgM3:          fill(2, 7850),
				UnitCost:         fill(2, 2),
			},
			RNA: tower.RNA{MassKg: 3e5},
		},
		PowerCurve: &servo.Request{
			Input: servo.Input{
				VMinMS:        4,
				VMaxMS:        20,
				RatedPowerW:   5e6,
				MaxTipSpeedMS: 90,
				TSR:           8,
				PitchMaxDeg:   45,
				RadiusM:       70,
				RegionIII:     true,
			},
			MeanWindMS: 8,
		},
		Collection: &bos.CollectionInput{
			PlantCapacityMW: 25,
			RotorDiameterM:  100,
			CableSpecs: []bos.CableSpec{
				{Name: "XLPE_185mm_33kV", CurrentA: 200, VoltageKV: 34.5, CostUSDPerM: 50},
			},
			Crews: []bos.CrewRate{
				{Operation: "trenching", DailyOutputM: 1000, LaborUSDPerDay: 2000, EquipmentUSDPerDay: 1000},
				{Operation: "cable_lay", DailyOutputM: 500, LaborUSDPerDay: 3000, EquipmentUSDPerDay: 1500},
			},
		},
	}
}

func TestBuildAndRender(t *testing.T) {
	doc, res, err := Build(testInput())
	require.NoError(t, err)
	require.NotNil(t, res.Tower)
	require.NotNil(t, res.PowerCurve)
	require.NotNil(t, res.Collection)
	assert.Len(t, doc.Sections, 5)
	assert.Equal(t, "Tower mass", doc.Sections[0].Heading)
	assert.Equal(t, []byte("\x89PNG"), doc.Chart[:4])

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, doc))
	assert.Equal(t, "%PDF", buf.String()[:4])
}

func TestBuildError(t *testing.T) {
	in := testInput()
	in.Tower.HubHeightM = 0
	_, _, err := Build(in)
	assert.ErrorIs(t, err, tower.ErrInvalidGeometry)
}

func TestWorkbooks(t *testing.T) {
	_, res, err := Build(testInput())
	require.NoError(t, err)
	books, err := Workbook(res)
	require.NoError(t, err)
	require.Len(t, books, 3)
	defer func() {
		for _, f := range books {
			f.Close()
		}
	}()

	assert.Equal(t, []string{"module_type_operation", "details"}, books["collection"].GetSheetList())
	rows, err := books["collection"].GetRows("module_type_operation")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "Materials", rows[1][1])

	rows, err = books["power_curve"].GetRows("power_curve")
	require.NoError(t, err)
	assert.Len(t, rows, 1+len(res.PowerCurve.Samples))

	rows, err = books["tower"].GetRows("sections")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestTowerSections(t *testing.T) {
	res, err := tower.Analyze(*testInput().Tower)
	require.NoError(t, err)
	s := Tower(res)
	require.Len(t, s, 2)
	assert.Equal(t, "Checks", s[1].Heading)
	assert.Equal(t, "gravity utilization", s[1].Rows[3].Key)
}

func post(t *testing.T, fn http.HandlerFunc, target string, in any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body)))
	return rec
}

func TestHandlers(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Generate, "/report/pdf", testInput())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = post(t, h.Spreadsheet, "/report/xlsx", testInput())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Spreadsheet, "/report/xlsx?kind=collection", testInput())
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "details")

	rec = post(t, h.Chart, "/report/chart", testInput().PowerCurve)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
