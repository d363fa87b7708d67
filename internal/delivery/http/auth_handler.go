package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shortener/internal/domain"
	"shortener/internal/usecase"
	"shortener/pkg/problemdetails"

	"go.uber.org/zap"
)

// AuthHandler handles user registration and login
type AuthHandler struct {
	auth   *usecase.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *usecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// LoginResponse carries the bearer token for subsequent requests
type LoginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'username' and 'password' fields",
		))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			writeProblem(w, problemdetails.New(
				http.StatusConflict,
				problemdetails.TypeUsernameTaken,
				"Username Taken",
				"The username is already registered",
			))
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeInvalidRequest,
				"Invalid Request",
				err.Error(),
			))
		default:
			h.logger.Error("failed to register user", zap.Error(err))
			writeProblem(w, problemdetails.New(
				http.StatusInternalServerError,
				problemdetails.TypeInternalError,
				"Internal Server Error",
				"Internal server error",
			))
		}
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{ID: user.ID, Username: user.Username})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'username' and 'password' fields",
		))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeProblem(w, problemdetails.New(
				http.StatusUnauthorized,
				problemdetails.TypeUnauthorized,
				"Unauthorized",
				"Invalid username or password",
			))
			return
		}
		h.logger.Error("failed to log user in", zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Internal server error",
		))
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
