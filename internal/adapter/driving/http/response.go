package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/gracehub/internal/application"
	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body. Fields is set only for
// validation failures.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// UserResponse is the JSON representation of an account. The password hash
// is never exposed.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse carries a user and, when one was issued, a token.
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// MessageResponse is the JSON representation of a pastor message.
type MessageResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	MessageHTML string `json:"message_html"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// MessageEnvelope wraps a mutated pastor message with a status message.
type MessageEnvelope struct {
	Message string          `json:"message"`
	Data    MessageResponse `json:"data"`
}

// StatusResponse is a bare status message.
type StatusResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest is the JSON body for PUT /users/{id}. Absent fields are
// left unchanged; any other key is rejected.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// ChangeRoleRequest is the JSON body for PATCH /users/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// CreateMessageRequest is the JSON body for POST /pastor-messages.
type CreateMessageRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	IsActive *bool  `json:"is_active"`
}

// UpdateMessageRequest is the JSON body for PUT /pastor-messages/{id}.
type UpdateMessageRequest struct {
	Title    *string `json:"title"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"is_active"`
}

// toUserResponse converts a domain Account to its JSON representation.
func toUserResponse(a model.Account) UserResponse {
	return UserResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toAuthResponse converts an application AuthResult to its JSON representation.
func toAuthResponse(message string, res application.AuthResult) AuthResponse {
	return AuthResponse{
		Message: message,
		User:    toUserResponse(res.Account),
		Token:   res.Token,
	}
}

// toMessageResponse converts a domain PastorMessage to its JSON representation.
func (h *Handler) toMessageResponse(m model.PastorMessage) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		Title:       m.Title,
		Message:     m.Body,
		MessageHTML: h.render(m.Body),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
