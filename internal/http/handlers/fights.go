package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

type FightHandler struct {
	fights storage.FightStore
	guard  *middleware.Guard
}

func NewFightHandler(fights storage.FightStore, guard *middleware.Guard) *FightHandler {
	return &FightHandler{fights: fights, guard: guard}
}

func (h *FightHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /fights", h.guard.Admin(h.handleCreate))
	mux.HandleFunc("GET /fights", h.handleList)
	mux.HandleFunc("GET /fights/{id}", h.handleGet)
}

func (h *FightHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.FightCreate
	if !decode(w, r, &req) {
		return
	}
	created, err := h.fights.CreateFight(r.Context(), req.Fight())
	if err != nil {
		storeError(w, r, err, "Fight not found")
		return
	}
	zerolog.Ctx(r.Context()).Info().
		Int64("fight_id", created.ID).
		Int64("event_id", created.EventID).
		Msg("fight created")
	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *FightHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := page(w, r)
	if !ok {
		return
	}
	fights, err := h.fights.ListFights(r.Context(), p)
	if err != nil {
		storeError(w, r, err, "Fight not found")
		return
	}
	respond.JSON(w, r, http.StatusOK, fights)
}

func (h *FightHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fight, err := h.fights.GetFight(r.Context(), id)
	if err != nil {
		storeError(w, r, err, "Fight not found")
		return
	}
	respond.JSON(w, r, http.StatusOK, fight)
}
