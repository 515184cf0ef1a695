package httphandler

import (
	"net/http"

	"github.com/ericfisherdev/gracehub/internal/application"
	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// Register creates a new account and returns it with a token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.accounts.Register(r.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, "register", err)
		return
	}

	h.logger.Info("account registered", "account_id", res.Account.ID)
	writeJSON(w, http.StatusCreated, toAuthResponse("user registered", res))
}

// Login exchanges credentials for a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.accounts.Login(r.Context(), application.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse("", res))
}

// ListUsers returns every account.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list users", err)
		return
	}

	resp := make([]UserResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toUserResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetUser returns a single account.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(account))
}

// UpdateUser applies a partial update to an account. The response carries a
// token only when the caller changed their own role.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := application.AccountUpdate{Username: req.Username, Password: req.Password}
	if req.Role != nil {
		role := model.Role(*req.Role)
		upd.Role = &role
	}

	caller, _ := IdentityFrom(r.Context())
	res, err := h.accounts.Update(r.Context(), caller, id, upd)
	if err != nil {
		h.writeServiceError(w, r, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse("user updated", res))
}

// ChangeRole sets an account's role.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := IdentityFrom(r.Context())
	res, err := h.accounts.ChangeRole(r.Context(), caller, id, model.Role(req.Role))
	if err != nil {
		h.writeServiceError(w, r, "change role", err)
		return
	}

	h.logger.Info("account role changed", "account_id", id, "role", req.Role, "by", caller.SubjectID)
	writeJSON(w, http.StatusOK, toAuthResponse("role updated", res))
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	caller, _ := IdentityFrom(r.Context())
	if err := h.accounts.Delete(r.Context(), caller, id); err != nil {
		h.writeServiceError(w, r, "delete user", err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "user deleted"})
}
