package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/almanac/internal/command"
	"github.com/greenhollow/almanac/internal/handler"
)

func TestHandleExecute(t *testing.T) {
	sess := newTestSession(t)
	h := handler.NewCommandHandler(command.NewService(sess))
	router := commandRouter(h)

	rec := postJSON(t, router, "/command", handler.ExecuteCommandRequest{Command: "PAUSE"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ExecuteCommandResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, command.MsgPaused, resp.Message)
	assert.True(t, sess.Pause().IsPaused())
}

func TestHandleExecute_UnknownCommand(t *testing.T) {
	sess := newTestSession(t)
	router := commandRouter(handler.NewCommandHandler(command.NewService(sess)))

	rec := postJSON(t, router, "/command", handler.ExecuteCommandRequest{Command: "DANCE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, handler.ErrMsgUnknownCommandErr, resp.Error)
}

func TestHandleExecute_Validation(t *testing.T) {
	sess := newTestSession(t)
	router := commandRouter(handler.NewCommandHandler(command.NewService(sess)))

	rec := postJSON(t, router, "/command", handler.ExecuteCommandRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/command", handler.ExecuteCommandRequest{Command: strings.Repeat("x", 201)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExecute_MalformedBody(t *testing.T) {
	sess := newTestSession(t)
	router := commandRouter(handler.NewCommandHandler(command.NewService(sess)))

	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func commandRouter(h *handler.CommandHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/command", h.HandleExecute)
	return mux
}
