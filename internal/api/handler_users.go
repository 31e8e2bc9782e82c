package api

import (
	"net/http"

	"quetzal-gate/internal/domain"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	accounts, err := h.accounts.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"users": accountsToAPI(accounts)})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.accounts.Create(ctx, domain.CreateAccountRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, envelope{"user": accountToAPI(*a)})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req accountRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.accounts.Update(ctx, id, domain.UpdateAccountRequest{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Active:   req.Active,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"user": accountToAPI(*a)})
}

// DeactivateUser soft-deletes an account.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.accounts.Deactivate(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"message": "user deactivated"})
}

func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	entries, err := h.audit.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"entries": auditToAPI(entries)})
}
