package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/markdave123-py/TypeSpark/internal/models"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
	"github.com/markdave123-py/TypeSpark/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
	log      *logger.Logger
}

func NewSessionHandler(sessions *services.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: logger.OrNop(log)}
}

type SubmitRequest struct {
	ItemID    *string  `json:"item_id"`
	Answer    *string  `json:"answer"`
	TimeTaken *float64 `json:"time_taken"`
}

type nextResponse struct {
	Item     models.StudyItem `json:"item"`
	Progress models.Progress  `json:"progress"`
}

type submitResponse struct {
	Result   models.SubmitResult `json:"result"`
	Progress models.Progress     `json:"progress"`
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// NextItem serves the item under the cursor and advances it.
func (h *SessionHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, progress, err := h.sessions.Next(id)
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.log.Debug("next item for unknown session", "session_id", id)
		writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, services.ErrSessionComplete):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "No more items in session",
			"session_completed": true,
		})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, nextResponse{Item: item, Progress: progress})
}

// Submit scores a typed answer.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.sessions.Get(id); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answer == nil || req.ItemID == nil {
		writeError(w, http.StatusBadRequest, "Missing answer or item_id")
		return
	}

	res, progress, err := h.sessions.Submit(id, *req.ItemID, *req.Answer, req.TimeTaken)
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, services.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{Result: res, Progress: progress})
}
