package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// API wires every handler group onto the router. Admin routes sit behind
// the bearer token, internal routes behind the shared-secret header.
type API struct {
	Orders   *OrdersHandler
	Zones    *ZonesHandler
	Products *ProductsHandler
	Emails   *EmailsHandler

	AdminToken     string
	InternalSecret string
}

func (a *API) Register(r *chi.Mux) {
	r.Route("/api", func(api chi.Router) {
		api.Post("/orders", a.Orders.create)
		api.Get("/delivery-zones", a.Zones.list)
		api.Get("/products", a.Products.list)

		api.Route("/admin", func(ad chi.Router) {
			ad.Use(RequireBearer(a.AdminToken))
			ad.Get("/orders", a.Orders.list)
			ad.Get("/orders/{id}", a.Orders.get)
			ad.Patch("/orders/{id}/status", a.Orders.updateStatus)
			ad.Get("/dashboard/stats", a.Orders.stats)
			ad.Get("/dashboard/recent-orders", a.Orders.recent)
			ad.Get("/email-logs", a.Emails.logs)
			ad.Get("/delivery-zones", a.Zones.list)
			ad.Post("/delivery-zones", a.Zones.create)
			ad.Put("/delivery-zones/{id}", a.Zones.update)
			ad.Delete("/delivery-zones/{id}", a.Zones.delete)
		})

		api.Route("/internal", func(in chi.Router) {
			in.Use(RequireSecret(a.InternalSecret))
			in.Post("/emails", a.Emails.send)
		})
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryLimit(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
