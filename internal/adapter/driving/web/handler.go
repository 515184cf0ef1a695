// Package web implements the public HTML driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	vm "github.com/ericfisherdev/gracehub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/gracehub/internal/application"
)

// SiteName is shown in the page title and header.
const SiteName = "Grace Hub"

// Handler is the web driving adapter that serves HTML via templ components.
type Handler struct {
	messages *application.MessageService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(messages *application.MessageService, logger *slog.Logger) *Handler {
	return &Handler{
		messages: messages,
		logger:   logger,
	}
}

// Home renders the public landing page with the active pastor message.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page := vm.HomeViewModel{SiteName: SiteName}

	msg, ok, err := h.messages.GetActive(r.Context())
	if err != nil {
		h.logger.Error("failed to load active message", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if ok {
		page.Message = toMessageViewModel(msg)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Layout(SiteName, HomePage(page)).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render home page", "error", err)
	}
}
