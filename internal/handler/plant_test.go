package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/handler"
	"github.com/greenhollow/almanac/internal/session"
)

// plantRouter mounts the plant handler the way the server does, so URL
// parameters resolve through chi.
func plantRouter(h *handler.PlantHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/plants", h.HandleSpawn)
	r.Get("/plants", h.HandleList)
	r.Route("/plants/{plantID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Get("/status", h.HandleStatus)
		r.Post("/water", h.HandleWater)
		r.Post("/fertilize", h.HandleFertilize)
		r.Post("/harvest", h.HandleHarvest)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	return postJSONMethod(t, router, http.MethodPost, path, body)
}

func postJSONMethod(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func post(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func spawnTurnip(t *testing.T, sess *session.Session) uuid.UUID {
	t.Helper()
	instance, err := sess.Garden().Spawn(context.Background(), "turnip", sess.ActiveRegion(), sess.Clock().CurrentTime())
	require.NoError(t, err)
	return instance.InstanceID
}

func TestHandleSpawn(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	rec := postJSON(t, router, "/plants", handler.SpawnPlantRequest{SpeciesID: "turnip"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var instance domain.PlantInstance
	decodeBody(t, rec, &instance)
	assert.Equal(t, "turnip", instance.SpeciesID)
	assert.Equal(t, session.DefaultRegion, instance.RegionID, "region defaults to the active region")
	assert.Equal(t, 1, sess.Garden().Count())
}

func TestHandleSpawn_ExplicitRegion(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	rec := postJSON(t, router, "/plants", handler.SpawnPlantRequest{SpeciesID: "turnip", RegionID: "greenhouse"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var instance domain.PlantInstance
	decodeBody(t, rec, &instance)
	assert.Equal(t, "greenhouse", instance.RegionID)
}

func TestHandleSpawn_Validation(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	tests := []struct {
		name string
		req  handler.SpawnPlantRequest
	}{
		{name: "missing species", req: handler.SpawnPlantRequest{}},
		{name: "uppercase species", req: handler.SpawnPlantRequest{SpeciesID: "Turnip"}},
		{name: "malformed region", req: handler.SpawnPlantRequest{SpeciesID: "turnip", RegionID: "no spaces"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/plants", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Equal(t, 0, sess.Garden().Count())
}

func TestHandleSpawn_ServiceErrors(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	rec := postJSON(t, router, "/plants", handler.SpawnPlantRequest{SpeciesID: "mandrake"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handler.ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, handler.ErrMsgSpeciesNotFoundErr, resp.Error)

	// Pumpkins are autumn-only; the session starts in spring.
	rec = postJSON(t, router, "/plants", handler.SpawnPlantRequest{SpeciesID: "pumpkin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, handler.ErrMsgOutOfSeasonErr, resp.Error)
}

func TestHandleList(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	spawnTurnip(t, sess)

	rec := get(router, "/plants")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.PlantListResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, session.DefaultRegion, resp.Region)
	assert.Len(t, resp.Plants, 1)

	rec = get(router, "/plants?region=greenhouse")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, "greenhouse", resp.Region)
	assert.Empty(t, resp.Plants)
}

func TestHandleGet(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	rec := get(router, "/plants/"+id.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var instance domain.PlantInstance
	decodeBody(t, rec, &instance)
	assert.Equal(t, id, instance.InstanceID)
}

func TestHandleGet_NotFound(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	rec := get(router, "/plants/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGet_MalformedID(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))

	rec := get(router, "/plants/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWater(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	rec := post(router, "/plants/"+id.String()+"/water")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.CareResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Applied)

	// Second watering the same day is reported, not rejected.
	rec = post(router, "/plants/"+id.String()+"/water")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Applied)
}

func TestHandleFertilize(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	rec := post(router, "/plants/"+id.String()+"/fertilize")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.CareResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Applied)

	got, ok := sess.Garden().Get(id)
	require.True(t, ok)
	assert.True(t, got.IsFertilized)
}

func TestHandleHarvest_NotReady(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	rec := post(router, "/plants/"+id.String()+"/harvest")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.HarvestResponse
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Ready)
	assert.Nil(t, resp.Result)
}

func TestHandleHarvest_Mature(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	// Sleep to maturity (3 stages, 2 days per stage).
	for day := 0; day < 5; day++ {
		sess.Sleep(context.Background())
	}

	rec := post(router, "/plants/"+id.String()+"/harvest")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.HarvestResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Ready)
	require.NotNil(t, resp.Result)
	assert.Positive(t, resp.Result.Yield)
	assert.True(t, resp.Destroyed, "single-harvest plants are removed")

	rec = post(router, "/plants/"+id.String()+"/harvest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	sess := newTestSession(t)
	router := plantRouter(handler.NewPlantHandler(sess))
	id := spawnTurnip(t, sess)

	rec := get(router, "/plants/"+id.String()+"/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		SpeciesName    string `json:"species_name"`
		StageCount     int    `json:"stage_count"`
		ReadyToHarvest bool   `json:"ready_to_harvest"`
	}
	decodeBody(t, rec, &status)
	assert.Equal(t, "Turnip", status.SpeciesName)
	assert.Equal(t, 3, status.StageCount)
	assert.False(t, status.ReadyToHarvest)
}
