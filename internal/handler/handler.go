// Package handler exposes the services over JSON HTTP. Routing, parsing
// and status mapping live here; all domain rules live in the services.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	users        *service.UserService
	groups       *service.GroupService
	transactions *service.TransactionService
	summary      *service.SummaryService
}

// New creates a Handler with all services backed by the given store.
func New(store storage.Store) *Handler {
	return &Handler{
		users:        service.NewUserService(store),
		groups:       service.NewGroupService(store),
		transactions: service.NewTransactionService(store),
		summary:      service.NewSummaryService(store),
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleCreateUser)
	mux.HandleFunc("GET /users/{user_id}", h.handleGetUser)
	mux.HandleFunc("POST /groups", h.handleCreateGroup)
	mux.HandleFunc("GET /groups/{group_id}", h.handleGetGroup)
	mux.HandleFunc("POST /transactions", h.handleCreateTransaction)
	mux.HandleFunc("GET /transactions/{trans_id}", h.handleGetTransaction)
	mux.HandleFunc("GET /summary/{group_id}", h.handleGetSummary)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createUserResponse{UserID: user.ID})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, getUserResponse{
		Name:   user.Name,
		Email:  user.Email,
		Groups: emptyIfNil(user.Groups),
	})
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name, req.Members, req.Details)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createGroupResponse{GroupID: group.ID})
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), r.PathValue("group_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, getGroupResponse{
		Name:         group.Name,
		Members:      emptyIfNil(group.Members),
		Transactions: emptyIfNil(group.Transactions),
	})
}

func (h *Handler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters")
		return
	}

	trans, err := h.transactions.CreateTransaction(r.Context(), service.CreateTransactionInput{
		Name:         req.Name,
		GroupID:      req.GroupID,
		TotalAmount:  req.TotalAmount,
		Participants: req.Participants,
		Payers:       req.Payers,
		Details:      req.Details,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createTransactionResponse{TransID: trans.ID})
}

func (h *Handler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	trans, err := h.transactions.GetTransaction(r.Context(), r.PathValue("trans_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, getTransactionResponse{
		Name:         trans.Name,
		TotalAmount:  trans.TotalAmount,
		GroupID:      trans.GroupID,
		Participants: emptyIfNil(trans.Participants),
		Payers:       trans.Payers,
		Payables:     trans.Payables,
		Details:      trans.Details,
	})
}

func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.GetSummary(r.Context(), r.PathValue("group_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Creditor keys at the top level plus the instruction list, mirroring
	// the consolidated-payables shape of the original API.
	body := make(map[string]any, len(summary.Pairwise)+1)
	for creditor, debts := range summary.Pairwise {
		body[creditor] = debts
	}
	body["details"] = emptyIfNil(summary.Details)
	writeJSON(w, http.StatusOK, body)
}

// HandleHealthz reports liveness. Mounted outside the auth middleware so
// load balancers can probe it.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps the service error taxonomy to HTTP statuses.
// Validation-class errors carry their reason to the client; storage and
// ledger-consistency failures stay opaque (already logged with context by
// the service layer).
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrMembership),
		errors.Is(err, service.ErrAmountMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// emptyIfNil keeps empty lists serializing as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
