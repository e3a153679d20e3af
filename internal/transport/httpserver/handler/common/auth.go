package common

import (
	"net/http"
	"time"

	usersdomain "shared-finance-go/internal/domain/users"
	"shared-finance-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, h.log, "auth.register: invalid request", err)
		return
	}

	session, err := h.Users.Register(r.Context(), usersdomain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, h.log, "auth.register: register failed", err, "email", req.Email)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, h.log, "auth.login: invalid request", err)
		return
	}

	session, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, h.log, "auth.login: login failed", err, "email", req.Email)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.log, "auth.me: missing user", ErrUnauthorized)
		return
	}

	user, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, h.log, "auth.me: get profile failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func toSessionResponse(session *usersdomain.Session) sessionResponse {
	return sessionResponse{User: toUserResponse(session.User), Token: session.Token}
}

func toUserResponse(user usersdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
