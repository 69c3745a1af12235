package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

const eventNotFound = "Event not found"

type EventHandler struct {
	events storage.EventStore
	guard  *middleware.Guard
}

func NewEventHandler(events storage.EventStore, guard *middleware.Guard) *EventHandler {
	return &EventHandler{events: events, guard: guard}
}

func (h *EventHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /events", h.guard.Admin(h.handleCreate))
	mux.HandleFunc("GET /events", h.handleList)
	mux.HandleFunc("GET /events/{id}", h.handleDetail)
	mux.Handle("DELETE /events/{id}", h.guard.Admin(h.handleDelete))
}

func (h *EventHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.EventCreate
	if !decode(w, r, &req) {
		return
	}
	created, err := h.events.CreateEvent(r.Context(), req.Event())
	if err != nil {
		storeError(w, r, err, eventNotFound)
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("event_id", created.ID).Msg("event created")
	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *EventHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := page(w, r)
	if !ok {
		return
	}
	events, err := h.events.ListEvents(r.Context(), p)
	if err != nil {
		storeError(w, r, err, eventNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, events)
}

// handleDetail returns the event with its fights nested.
func (h *EventHandler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.events.GetEventDetail(r.Context(), id)
	if err != nil {
		storeError(w, r, err, eventNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, detail)
}

func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		storeError(w, r, err, eventNotFound)
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("event_id", id).Msg("event deleted with its fights")
	respond.NoContent(w)
}
