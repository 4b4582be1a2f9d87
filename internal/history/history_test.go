package history

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"WindSE/internal/auth"
	"WindSE/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndFetch(t *testing.T) {
	store := repo.NewMemory()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &Recorder{Repo: store, Now: func() time.Time { return now }}

	anon := httptest.NewRequest(http.MethodPost, "/", nil)
	rec.Record(anon, "tower", map[string]int{"a": 1}, map[string]int{"b": 2})

	req := anon.WithContext(auth.WithUser(anon.Context(), 3, "ana"))
	rec.Record(req, "tower", map[string]int{"a": 1}, map[string]int{"b": 2})

	runs, err := store.ListRuns(req.Context(), 3, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.JSONEq(t, `{"a":1}`, string(runs[0].Input))
	assert.Equal(t, now, runs[0].CreatedAt)

	h := &Handler{Repo: store}
	router := mux.NewRouter()
	router.HandleFunc("/runs", h.List)
	router.HandleFunc("/runs/{id}", h.Get)

	get := func(path string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r = r.WithContext(auth.WithUser(r.Context(), 3, "ana"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	w := get("/runs?kind=tower")
	require.Equal(t, http.StatusOK, w.Code)
	var list []summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = get("/runs/" + list[0].ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"tower"`)

	assert.Equal(t, http.StatusBadRequest, get("/runs/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, get("/runs/"+"00000000-0000-0000-0000-000000000000").Code)
	assert.Equal(t, http.StatusBadRequest, get("/runs?limit=-1").Code)
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Record(httptest.NewRequest(http.MethodPost, "/", nil), "x", nil, nil)
	})
}
