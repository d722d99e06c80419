package httpx

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/catalog"
)

type ProductStore interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type ProductsHandler struct {
	Store ProductStore
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		log.Printf("httpx: list products: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
