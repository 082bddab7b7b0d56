package handler

import (
	"net/http"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/metrics"
	"github.com/greenhollow/almanac/internal/session"
)

// TimeResponse represents the current clock reading
type TimeResponse struct {
	Time       domain.GameTime `json:"time"`
	Display    string          `json:"display"`
	IsPaused   bool            `json:"is_paused"`
	AtDayLimit bool            `json:"at_day_limit"`
}

// TimeHandler handles clock-related HTTP requests
type TimeHandler struct {
	sess *session.Session
}

// NewTimeHandler creates a new time handler
func NewTimeHandler(sess *session.Session) *TimeHandler {
	return &TimeHandler{sess: sess}
}

// HandleGetTime returns the current in-game time.
func (h *TimeHandler) HandleGetTime(w http.ResponseWriter, r *http.Request) {
	clk := h.sess.Clock()
	t := clk.CurrentTime()

	respondJSON(w, http.StatusOK, TimeResponse{
		Time:       t,
		Display:    t.String(),
		IsPaused:   clk.IsPaused(),
		AtDayLimit: clk.AtDayLimit(),
	})
}

// HandlePause stops clock advancement.
func (h *TimeHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	h.sess.Pause().Pause()

	log.Info("Clock paused via API")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTimePaused})
}

// HandleResume clears the explicit pause.
func (h *TimeHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	h.sess.Pause().Resume()

	log.Info("Clock resumed via API")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTimeResumed})
}

// HandleSleep jumps the clock to the start of the next day. The session runs
// a full garden update as part of the jump so plants observe the new date
// immediately.
func (h *TimeHandler) HandleSleep(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	t := h.sess.Sleep(r.Context())
	metrics.Sleeps.Inc()

	log.Info("Slept to next day", "time", t.String())

	respondJSON(w, http.StatusOK, TimeResponse{
		Time:       t,
		Display:    t.String(),
		IsPaused:   h.sess.Clock().IsPaused(),
		AtDayLimit: h.sess.Clock().AtDayLimit(),
	})
}
