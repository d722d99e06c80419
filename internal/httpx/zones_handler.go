package httpx

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/zones"
)

type ZoneStore interface {
	List(ctx context.Context) ([]zones.Zone, error)
	Create(ctx context.Context, name string, price float64) (*zones.Zone, error)
	Update(ctx context.Context, id int64, name string, price float64) (*zones.Zone, error)
	Delete(ctx context.Context, id int64) error
}

type ZonesHandler struct {
	Store    ZoneStore
	validate *validator.Validate
}

func NewZonesHandler(store ZoneStore) *ZonesHandler {
	return &ZonesHandler{Store: store, validate: NewValidator()}
}

type ZoneRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (h *ZonesHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		log.Printf("httpx: list zones: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ZonesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ZoneRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	z, err := h.Store.Create(ctx, req.Name, req.Price)
	if errors.Is(err, zones.ErrDuplicateName) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("httpx: create zone: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, z)
}

func (h *ZonesHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid zone id")
		return
	}
	var req ZoneRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	z, err := h.Store.Update(ctx, id, req.Name, req.Price)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, z)
	case errors.Is(err, zones.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, zones.ErrDuplicateName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("httpx: update zone %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *ZonesHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid zone id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err = h.Store.Delete(ctx, id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, zones.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("httpx: delete zone %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
