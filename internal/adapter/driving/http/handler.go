package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/gracehub/internal/application"
	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	accounts *application.AccountService
	messages *application.MessageService
	verifier TokenVerifier
	render   func(string) string
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. render turns
// a message body into the HTML served as message_html.
func NewHandler(
	accounts *application.AccountService,
	messages *application.MessageService,
	verifier TokenVerifier,
	render func(string) string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts: accounts,
		messages: messages,
		verifier: verifier,
		render:   render,
		logger:   logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	authed := func(f http.HandlerFunc) http.Handler { return RequireAuthenticated(h.verifier, f) }
	admin := func(f http.HandlerFunc) http.Handler { return RequireRole(h.verifier, model.RoleAdmin, f) }

	mux.HandleFunc("POST /users", h.Register)
	mux.HandleFunc("POST /users/login", h.Login)
	mux.Handle("GET /users", authed(h.ListUsers))
	mux.Handle("GET /users/{id}", authed(h.GetUser))
	mux.Handle("PUT /users/{id}", authed(h.UpdateUser))
	mux.Handle("DELETE /users/{id}", authed(h.DeleteUser))
	mux.Handle("PATCH /users/{id}/role", admin(h.ChangeRole))

	mux.Handle("GET /pastor-messages", authed(h.ListMessages))
	mux.HandleFunc("GET /pastor-messages/active", h.GetActiveMessage)
	mux.Handle("POST /pastor-messages", admin(h.CreateMessage))
	mux.Handle("PUT /pastor-messages/{id}", admin(h.UpdateMessage))
	mux.Handle("DELETE /pastor-messages/{id}", admin(h.DeleteMessage))
	mux.Handle("PATCH /pastor-messages/{id}/activate", admin(h.ActivateMessage))

	mux.HandleFunc("GET /health", h.Health)
}

// ApplyMiddleware wraps handler with request id, logging, and recovery middleware.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, handler)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware chain.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// errInvalidBody is returned by decodeJSON for any body it cannot use.
var errInvalidBody = errors.New("invalid request body")

// decodeJSON decodes a single JSON object from the request body, rejecting
// unknown keys and bodies larger than maxBodyBytes. The returned error text
// is safe to send to the client.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return errInvalidBody
	}
	return nil
}

// decodeError maps an encoding/json failure to a client-facing message that
// names at most the offending JSON key.
func decodeError(err error) error {
	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		return errors.New("request body too large")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("invalid value for field %q", typeErr.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return fmt.Errorf("unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
	default:
		return errInvalidBody
	}
}

// pathID parses the {id} path segment. On failure it writes a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps application and store errors onto HTTP responses.
// Unexpected errors are logged and reported as a bare 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *application.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: application.ErrValidation.Error(), Fields: verr.Fields})
	case errors.Is(err, application.ErrInvalidCredentials):
		writeUnauthorized(w, "invalid credentials")
	case errors.Is(err, application.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, driven.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, driven.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "pastor message not found")
	case errors.Is(err, driven.ErrAccountConflict):
		writeError(w, http.StatusConflict, "username or email already registered")
	case errors.Is(err, driven.ErrAccountConstraint):
		writeError(w, http.StatusBadRequest, "request violates a data constraint")
	default:
		h.logger.Error("request failed",
			"op", op,
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
