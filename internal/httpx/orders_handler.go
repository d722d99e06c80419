package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/redisx"
)

type OrderService interface {
	Create(ctx context.Context, sub orders.Submission) (*orders.Order, error)
	Get(ctx context.Context, id int64) (*orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
	Recent(ctx context.Context, limit int) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, id int64, s orders.Status) (*orders.Order, error)
	Stats(ctx context.Context) (orders.Stats, error)
}

type OrdersHandler struct {
	Service  OrderService
	Redis    *redis.Client // nil disables dashboard caching
	validate *validator.Validate
}

func NewOrdersHandler(svc OrderService, rdb *redis.Client) *OrdersHandler {
	return &OrdersHandler{Service: svc, Redis: rdb, validate: NewValidator()}
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string             `json:"customerPhone" validate:"required"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
	DeliveryZone    string             `json:"deliveryZone" validate:"required"`
	DeliveryFee     float64            `json:"deliveryFee" validate:"gte=0"`
	Subtotal        float64            `json:"subtotal" validate:"gt=0"`
	TotalAmount     float64            `json:"totalAmount" validate:"gt=0"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID       int64   `json:"productId" validate:"required"`
	ProductName     string  `json:"productName" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,min=1"`
	SelectedSize    string  `json:"selectedSize"`
	SelectedColor   string  `json:"selectedColor"`
	PriceAtPurchase float64 `json:"priceAtPurchase" validate:"gt=0"`
}

func (req CreateOrderRequest) toSubmission() orders.Submission {
	sub := orders.Submission{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryZone:    req.DeliveryZone,
		DeliveryFee:     req.DeliveryFee,
		Subtotal:        req.Subtotal,
		TotalAmount:     req.TotalAmount,
		Items:           make([]orders.SubmittedItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		sub.Items = append(sub.Items, orders.SubmittedItem{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			SelectedSize:    it.SelectedSize,
			SelectedColor:   it.SelectedColor,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	return sub
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Service.Create(ctx, req.toSubmission())
	if err != nil {
		if orders.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("httpx: create order: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": o})
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Service.List(ctx)
	if err != nil {
		log.Printf("httpx: list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Service.Get(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		log.Printf("httpx: get order %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req UpdateStatusRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Service.UpdateStatus(ctx, id, orders.Status(req.Status))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, o)
	case orders.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	default:
		log.Printf("httpx: update order %d status: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *OrdersHandler) stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyDashboardStats).Result(); err == nil && s != "" {
			writeRawJSON(w, http.StatusOK, []byte(s))
			return
		}
	}

	st, err := h.Service.Stats(ctx)
	if err != nil {
		log.Printf("httpx: dashboard stats: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	b, _ := json.Marshal(st)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, redisx.KeyDashboardStats, b, redisx.TTLStats).Err()
	}
	writeRawJSON(w, http.StatusOK, b)
}

func (h *OrdersHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 5)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyRecentOrders, limit)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeRawJSON(w, http.StatusOK, []byte(s))
			return
		}
	}

	list, err := h.Service.Recent(ctx, limit)
	if err != nil {
		log.Printf("httpx: recent orders: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	b, _ := json.Marshal(list)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLRecent).Err()
	}
	writeRawJSON(w, http.StatusOK, b)
}
