package handler

import (
	"net/http"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/metrics"
	"github.com/greenhollow/almanac/internal/session"
)

// SpawnPlantRequest represents the request to plant a new instance
type SpawnPlantRequest struct {
	SpeciesID string `json:"species_id" validate:"required,max=64,slug"`
	RegionID  string `json:"region_id" validate:"omitempty,max=64,slug"`
}

// CareResponse represents the outcome of a water or fertilize action
type CareResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// HarvestResponse represents the outcome of a harvest attempt
type HarvestResponse struct {
	Ready     bool                  `json:"ready"`
	Result    *domain.HarvestResult `json:"result,omitempty"`
	Destroyed bool                  `json:"destroyed,omitempty"`
}

// PlantListResponse represents a region's plant listing
type PlantListResponse struct {
	Region string                 `json:"region"`
	Plants []domain.PlantInstance `json:"plants"`
}

// PlantHandler handles garden-related HTTP requests
type PlantHandler struct {
	sess *session.Session
}

// NewPlantHandler creates a new plant handler
func NewPlantHandler(sess *session.Session) *PlantHandler {
	return &PlantHandler{sess: sess}
}

// HandleSpawn plants a new instance of a species in a region.
func (h *PlantHandler) HandleSpawn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SpawnPlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spawn plant"); err != nil {
		return
	}

	regionID := req.RegionID
	if regionID == "" {
		regionID = h.sess.ActiveRegion()
	}

	now := h.sess.Clock().CurrentTime()
	instance, err := h.sess.Garden().Spawn(r.Context(), req.SpeciesID, regionID, now)
	if err != nil {
		respondServiceError(w, r, "Spawn plant", err)
		return
	}

	log.Info("Plant spawned",
		"instance_id", instance.InstanceID,
		"species_id", instance.SpeciesID,
		"region_id", instance.RegionID)

	respondJSON(w, http.StatusCreated, instance)
}

// HandleList returns all plants in a region. The region query parameter
// defaults to the session's active region.
func (h *PlantHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	regionID := GetOptionalQueryParam(r, "region", h.sess.ActiveRegion())

	plants := h.sess.Garden().List(regionID)
	if plants == nil {
		plants = []domain.PlantInstance{}
	}

	respondJSON(w, http.StatusOK, PlantListResponse{
		Region: regionID,
		Plants: plants,
	})
}

// HandleGet returns a single plant instance.
func (h *PlantHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPlantIDParam(r, w)
	if !ok {
		return
	}

	instance, found := h.sess.Garden().Get(id)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgPlantNotFoundErr)
		return
	}

	respondJSON(w, http.StatusOK, instance)
}

// HandleWater waters a plant. Watering twice in one day is reported as an
// unapplied action, not an error.
func (h *PlantHandler) HandleWater(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPlantIDParam(r, w)
	if !ok {
		return
	}

	applied, err := h.sess.Garden().Water(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Water plant", err)
		return
	}

	message := "Plant watered"
	if !applied {
		message = "Plant was already watered today"
	} else {
		metrics.PlantsWatered.Inc()
	}

	respondJSON(w, http.StatusOK, CareResponse{Applied: applied, Message: message})
}

// HandleFertilize applies fertilizer to a plant.
func (h *PlantHandler) HandleFertilize(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPlantIDParam(r, w)
	if !ok {
		return
	}

	applied, err := h.sess.Garden().Fertilize(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Fertilize plant", err)
		return
	}

	message := "Plant fertilized"
	if !applied {
		message = "Plant is already fertilized"
	} else {
		metrics.PlantsFertilized.Inc()
	}

	respondJSON(w, http.StatusOK, CareResponse{Applied: applied, Message: message})
}

// HandleHarvest attempts to harvest a plant. A plant that is not ready yet
// yields a 200 with ready=false; missing plants are a 404.
func (h *PlantHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, ok := GetPlantIDParam(r, w)
	if !ok {
		return
	}

	now := h.sess.Clock().CurrentTime()
	result, err := h.sess.Garden().Harvest(r.Context(), id, now)
	if err != nil {
		respondServiceError(w, r, "Harvest plant", err)
		return
	}

	if result == nil {
		respondJSON(w, http.StatusOK, HarvestResponse{Ready: false})
		return
	}

	_, stillThere := h.sess.Garden().Get(id)

	log.Info("Plant harvested",
		"instance_id", id,
		"species_id", result.SpeciesID,
		"yield", result.Yield,
		"quality", result.Quality)

	respondJSON(w, http.StatusOK, HarvestResponse{
		Ready:     true,
		Result:    result,
		Destroyed: !stillThere,
	})
}

// HandleStatus returns the derived status readout for a plant.
func (h *PlantHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPlantIDParam(r, w)
	if !ok {
		return
	}

	now := h.sess.Clock().CurrentTime()
	status, err := h.sess.Garden().Status(id, now)
	if err != nil {
		respondServiceError(w, r, "Plant status", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}
