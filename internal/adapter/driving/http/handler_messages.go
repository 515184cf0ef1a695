package httphandler

import (
	"net/http"

	"github.com/ericfisherdev/gracehub/internal/application"
	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// ListMessages returns every pastor message.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list messages", err)
		return
	}

	resp := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, h.toMessageResponse(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetActiveMessage returns the active pastor message, or 404 when none is active.
func (h *Handler) GetActiveMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok, err := h.messages.GetActive(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "get active message", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no active pastor message")
		return
	}

	writeJSON(w, http.StatusOK, h.toMessageResponse(msg))
}

// CreateMessage stores a new pastor message. It becomes the active message
// unless is_active is false.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.messages.Create(r.Context(), application.MessageInput{
		Title:    req.Title,
		Body:     req.Message,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.writeServiceError(w, r, "create message", err)
		return
	}

	h.logger.Info("pastor message created", "message_id", msg.ID, "active", msg.IsActive)
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "pastor message created", Data: h.toMessageResponse(msg)})
}

// UpdateMessage applies a partial update to a pastor message.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.messages.Update(r.Context(), id, model.PastorMessagePatch{
		Title:    req.Title,
		Body:     req.Message,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.writeServiceError(w, r, "update message", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pastor message updated", Data: h.toMessageResponse(msg)})
}

// ActivateMessage makes a pastor message the single active one.
func (h *Handler) ActivateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	msg, err := h.messages.Activate(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "activate message", err)
		return
	}

	h.logger.Info("pastor message activated", "message_id", msg.ID)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pastor message activated", Data: h.toMessageResponse(msg)})
}

// DeleteMessage removes a pastor message. No other message is promoted.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "delete message", err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "pastor message deleted"})
}
