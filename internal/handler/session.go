package handler

import (
	"net/http"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/session"
	"github.com/greenhollow/almanac/internal/species"
)

// SetRegionRequest represents the request to change the active region
type SetRegionRequest struct {
	RegionID string `json:"region_id" validate:"required,max=64,slug"`
}

// RegionResponse represents the active region
type RegionResponse struct {
	RegionID string `json:"region_id"`
}

// SpeciesListResponse represents the species catalog listing
type SpeciesListResponse struct {
	Species []domain.PlantSpecies `json:"species"`
}

// SessionHandler handles session-level HTTP requests
type SessionHandler struct {
	sess    *session.Session
	catalog *species.Catalog
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sess *session.Session, catalog *species.Catalog) *SessionHandler {
	return &SessionHandler{sess: sess, catalog: catalog}
}

// HandleSave persists the session to the save slot.
func (h *SessionHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := h.sess.Save(r.Context()); err != nil {
		log.Error("Manual save failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
		return
	}

	log.Info("Session saved via API")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionSaved})
}

// HandleGetRegion returns the active region.
func (h *SessionHandler) HandleGetRegion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RegionResponse{RegionID: h.sess.ActiveRegion()})
}

// HandleSetRegion selects the region that receives per-tick updates.
func (h *SessionHandler) HandleSetRegion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SetRegionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set region"); err != nil {
		return
	}

	h.sess.SetActiveRegion(req.RegionID)

	log.Info("Active region changed", "region_id", req.RegionID)
	respondJSON(w, http.StatusOK, RegionResponse{RegionID: req.RegionID})
}

// HandleListSpecies returns the full species catalog.
func (h *SessionHandler) HandleListSpecies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SpeciesListResponse{Species: h.catalog.List()})
}
