package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type sessionResponse struct {
	UserID    string  `json:"userId"`
	Email     *string `json:"email,omitempty"`
	Anonymous bool    `json:"anonymous"`
}

// CreateSession starts an anonymous session, mirroring sign-in without an
// account. Calling it while already signed in is a no-op.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if user := ctxkeys.User(r.Context()); user != nil {
		respondJSON(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email, Anonymous: user.Anonymous})
		return
	}

	user, err := h.authService.CreateAnonymousSession()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to create session")
		return
	}

	err = h.issueCookie(w, user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse{UserID: user.ID, Anonymous: true})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register attaches email + password to the current session, or creates a
// fresh account when called signed out.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	current := ctxkeys.User(r.Context())

	user, err := h.authService.Register(current, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, r, http.StatusConflict, "email already exists")
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(w, r, http.StatusBadRequest, "invalid email address")
		default:
			respondError(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	err = h.issueCookie(w, user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to sign in")
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse{UserID: user.ID, Email: user.Email, Anonymous: user.Anonymous})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to sign in")
		return
	}

	err = h.issueCookie(w, user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to sign in")
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email, Anonymous: user.Anonymous})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) issueCookie(w http.ResponseWriter, user *model.User) error {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		return err
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
	return nil
}
