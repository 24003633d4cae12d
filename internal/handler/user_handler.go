package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pranavkale/eventslots/internal/model"
)

// UserService is the slice of the service layer the user handlers need.
type UserService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Signin(ctx context.Context, req model.SigninRequest) (*model.AuthResponse, error)
}

// UserHandler holds the HTTP handlers for organizer accounts.
type UserHandler struct {
	svc    UserService
	logger *zap.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Signup handles POST /v1/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		h.logError("signup", err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Signin handles POST /v1/users/signin
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Signin(r.Context(), req)
	if err != nil {
		h.logError("signin", err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) logError(op string, err error) {
	if h.logger != nil {
		h.logger.Warn(op+" failed", zap.Error(err))
	}
}
