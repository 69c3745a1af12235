package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

const fighterNotFound = "Fighter not found"

// FighterHandler serves the fighter catalogue. Reads are public, writes are
// admin-only.
type FighterHandler struct {
	fighters storage.FighterStore
	guard    *middleware.Guard
}

func NewFighterHandler(fighters storage.FighterStore, guard *middleware.Guard) *FighterHandler {
	return &FighterHandler{fighters: fighters, guard: guard}
}

func (h *FighterHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /fighters", h.guard.Admin(h.handleCreate))
	mux.HandleFunc("GET /fighters", h.handleList)
	mux.HandleFunc("GET /fighters/{id}", h.handleGet)
	mux.Handle("PATCH /fighters/{id}", h.guard.Admin(h.handleUpdate))
	mux.Handle("DELETE /fighters/{id}", h.guard.Admin(h.handleDelete))
}

func (h *FighterHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.FighterCreate
	if !decode(w, r, &req) {
		return
	}
	created, err := h.fighters.CreateFighter(r.Context(), req.Fighter())
	if err != nil {
		storeError(w, r, err, fighterNotFound)
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("fighter_id", created.ID).Msg("fighter created")
	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *FighterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := page(w, r)
	if !ok {
		return
	}
	fighters, err := h.fighters.ListFighters(r.Context(), p)
	if err != nil {
		storeError(w, r, err, fighterNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, fighters)
}

func (h *FighterHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fighter, err := h.fighters.GetFighter(r.Context(), id)
	if err != nil {
		storeError(w, r, err, fighterNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, fighter)
}

func (h *FighterHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.FighterUpdate
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.fighters.UpdateFighter(r.Context(), id, req.Patch())
	if err != nil {
		storeError(w, r, err, fighterNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *FighterHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.fighters.DeleteFighter(r.Context(), id); err != nil {
		storeError(w, r, err, fighterNotFound)
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("fighter_id", id).Msg("fighter deleted")
	respond.NoContent(w)
}
