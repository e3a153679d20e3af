package common

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	accountsdomain "shared-finance-go/internal/domain/accounts"
	"shared-finance-go/internal/transport/httpserver/middleware"
	"shared-finance-go/pkg/logger"
)

type createAccountRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"max=255"`
	MaxNumUsers int    `json:"max_num_users" validate:"gte=0,lte=100"`
}

type joinAccountRequest struct {
	AccessKey string `json:"access_key" validate:"required,len=8"`
}

type accountResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MaxNumUsers   int       `json:"max_num_users"`
	AccessKey     string    `json:"access_key"`
	AdminUserID   string    `json:"admin_user_id"`
	CreatorUserID string    `json:"creator_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.log, "accounts.list: missing user", ErrUnauthorized)
		return
	}

	accounts, err := h.Accounts.ListAccounts(r.Context(), userID)
	if err != nil {
		WriteError(w, h.log, "accounts.list: list failed", err, "user_id", userID)
		return
	}

	response := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.log, "accounts.create: missing user", ErrUnauthorized)
		return
	}

	var req createAccountRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, h.log, "accounts.create: invalid request", err, "user_id", userID)
		return
	}

	account, err := h.Accounts.CreateAccount(r.Context(), accountsdomain.CreateAccountInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		MaxNumUsers: req.MaxNumUsers,
	})
	if err != nil {
		WriteError(w, h.log, "accounts.create: create failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(*account))
}

func (h *Handlers) JoinAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.log, "accounts.join: missing user", ErrUnauthorized)
		return
	}

	var req joinAccountRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, h.log, "accounts.join: invalid request", err, "user_id", userID)
		return
	}

	account, err := h.Accounts.JoinAccount(r.Context(), userID, req.AccessKey)
	if err != nil {
		WriteError(w, h.log, "accounts.join: join failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(*account))
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		WriteError(w, h.log, "accounts.get: missing account", accountsdomain.ErrAccountNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handlers) LeaveAccount(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "accounts.leave")
	if !ok {
		return
	}

	if err := h.Accounts.LeaveAccount(r.Context(), accountID, userID); err != nil {
		WriteError(w, h.log, "accounts.leave: leave failed", err, "user_id", userID, "account_id", accountID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "accounts.delete")
	if !ok {
		return
	}

	if err := h.Accounts.DeleteAccount(r.Context(), accountID, userID); err != nil {
		WriteError(w, h.log, "accounts.delete: delete failed", err, "user_id", userID, "account_id", accountID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "accounts.members")
	if !ok {
		return
	}

	members, err := h.Accounts.ListMembers(r.Context(), accountID)
	if err != nil {
		WriteError(w, h.log, "accounts.members: list failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, memberResponse{
			UserID:   member.UserID,
			Name:     member.Name,
			Email:    member.Email,
			IsAdmin:  member.IsAdmin,
			JoinedAt: member.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "accounts.remove_member")
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "user_id")
	if err := h.Accounts.RemoveMember(r.Context(), accountID, userID, memberID); err != nil {
		WriteError(w, h.log, "accounts.remove_member: remove failed", err, "user_id", userID, "account_id", accountID, "member_id", memberID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) scope(w http.ResponseWriter, r *http.Request, op string) (string, string, bool) {
	return RequestScope(w, r, h.log, op)
}

func toAccountResponse(account accountsdomain.Account) accountResponse {
	return accountResponse{
		ID:            account.ID,
		Name:          account.Name,
		Description:   account.Description,
		MaxNumUsers:   account.MaxNumUsers,
		AccessKey:     account.AccessKey,
		AdminUserID:   account.AdminUserID,
		CreatorUserID: account.CreatorUserID,
		CreatedAt:     account.CreatedAt,
	}
}

// RequestScope returns the acting user and the account admitted by
// middleware.AccountScope, writing an error when either is missing.
func RequestScope(w http.ResponseWriter, r *http.Request, log logger.Logger, op string) (string, string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, log, op+": missing user", ErrUnauthorized)
		return "", "", false
	}
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		WriteError(w, log, op+": missing account", accountsdomain.ErrAccountNotFound)
		return "", "", false
	}
	return userID, account.ID, true
}
