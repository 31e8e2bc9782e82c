package api

import (
	"net/http"

	"quetzal-gate/internal/domain"
)

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.authenticated(w, r)
	if !ok {
		return
	}
	recs, err := h.records.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"records": recordsToAPI(recs)})
}

func (h *Handler) RecordStats(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.authenticated(w, r)
	if !ok {
		return
	}
	stats, err := h.records.Stats(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"stats": stats})
}

// CreateRecord logs a movement for any signed-in caller.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.authenticated(w, r)
	if !ok {
		return
	}
	var req recordRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.records.Create(ctx, domain.CreateRecordRequest{
		Plate:     req.Plate,
		Driver:    req.Driver,
		Direction: req.Direction,
		EventAt:   req.Timestamp,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, envelope{"record": recordToAPI(*rec)})
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req recordRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.records.Update(ctx, id, domain.UpdateRecordRequest{
		Plate:     req.Plate,
		Driver:    req.Driver,
		Direction: req.Direction,
		EventAt:   req.Timestamp,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"record": recordToAPI(*rec)})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.administrator(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.records.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"message": "record deleted"})
}
