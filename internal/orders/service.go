package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/catalog"
	kafkax "github.com/GrandsonfrmO/galaxyshop-backend/internal/kafka"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/zones"
)

type Store interface {
	CreateTx(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	GetStatus(ctx context.Context, id int64) (Status, error)
	List(ctx context.Context) ([]Order, error)
	Recent(ctx context.Context, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, s Status) (*Order, error)
	Stats(ctx context.Context) (Stats, error)
}

type ZoneFinder interface {
	ByName(ctx context.Context, name string) (*zones.Zone, error)
}

type ProductFinder interface {
	ByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Product, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service validates submissions against the live catalog and zone set,
// persists accepted orders atomically and publishes the created event.
type Service struct {
	Store    Store
	Zones    ZoneFinder
	Catalog  ProductFinder
	Producer Publisher // nil disables publishing
	Name     string    // producer name on outgoing events
}

// Submission is a normalized order request, shape-checked at the HTTP
// boundary. The declared money fields are re-verified here against the
// resolved zone and the item snapshots.
type Submission struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryZone    string
	DeliveryFee     float64
	Subtotal        float64
	TotalAmount     float64
	Items           []SubmittedItem
}

type SubmittedItem struct {
	ProductID       int64
	ProductName     string
	Quantity        int
	SelectedSize    string
	SelectedColor   string
	PriceAtPurchase float64
}

// Create runs the validation pipeline (first failure wins), persists the
// order with its items in one transaction, then publishes order.created.
// A publish problem never affects the already-committed order.
func (s *Service) Create(ctx context.Context, sub Submission) (*Order, error) {
	zone, err := s.Zones.ByName(ctx, sub.DeliveryZone)
	if errors.Is(err, zones.ErrNotFound) {
		return nil, &ValidationError{Rule: "unknown zone", Detail: sub.DeliveryZone}
	}
	if err != nil {
		return nil, fmt.Errorf("resolve zone: %w", err)
	}

	ids := make([]int64, 0, len(sub.Items))
	for _, it := range sub.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Catalog.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	var subtotal float64
	for _, it := range sub.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, &ValidationError{Rule: "unknown product", Detail: fmt.Sprintf("id=%d", it.ProductID)}
		}
		if it.Quantity > p.Stock {
			return nil, &ValidationError{
				Rule:   "insufficient stock",
				Detail: fmt.Sprintf("%s: requested %d, available %d", p.Name, it.Quantity, p.Stock),
			}
		}
		subtotal += it.PriceAtPurchase * float64(it.Quantity)
	}

	// Client-computed totals are not trusted; compare at cent precision.
	switch {
	case cents(subtotal) != cents(sub.Subtotal):
		return nil, &ValidationError{Rule: "price mismatch", Detail: "subtotal does not match item prices"}
	case cents(sub.DeliveryFee) != cents(zone.Price):
		return nil, &ValidationError{Rule: "price mismatch", Detail: "delivery fee does not match zone price"}
	case cents(sub.TotalAmount) != cents(sub.Subtotal+sub.DeliveryFee):
		return nil, &ValidationError{Rule: "price mismatch", Detail: "total does not equal subtotal plus delivery fee"}
	}

	o := &Order{
		CustomerName:    sub.CustomerName,
		CustomerEmail:   sub.CustomerEmail,
		CustomerPhone:   sub.CustomerPhone,
		DeliveryAddress: sub.DeliveryAddress,
		DeliveryZone:    zone.Name,
		DeliveryFee:     sub.DeliveryFee,
		Subtotal:        sub.Subtotal,
		TotalAmount:     sub.TotalAmount,
		Status:          StatusPending,
		Items:           make([]OrderItem, 0, len(sub.Items)),
	}
	for _, it := range sub.Items {
		o.Items = append(o.Items, OrderItem{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			SelectedSize:    it.SelectedSize,
			SelectedColor:   it.SelectedColor,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}

	if err := s.Store.CreateTx(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	s.publishCreated(ctx, o)
	return o, nil
}

// UpdateStatus accepts any defined status. Transitions outside the
// recommended lifecycle are logged for the audit trail but not rejected.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, &ValidationError{Rule: "unknown status", Detail: string(to)}
	}
	from, err := s.Store.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	if from != to && !RecommendedTransition(from, to) {
		log.Printf("orders: unusual status transition for order %d: %s -> %s", id, from, to)
	}
	return s.Store.UpdateStatus(ctx, id, to)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) { return s.Store.Get(ctx, id) }
func (s *Service) List(ctx context.Context) ([]Order, error)        { return s.Store.List(ctx) }
func (s *Service) Stats(ctx context.Context) (Stats, error)         { return s.Store.Stats(ctx) }

func (s *Service) Recent(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	return s.Store.Recent(ctx, limit)
}

func (s *Service) publishCreated(ctx context.Context, o *Order) {
	if s.Producer == nil {
		return
	}
	items := make([]ItemSnapshot, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemSnapshot{
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			SelectedSize:    it.SelectedSize,
			SelectedColor:   it.SelectedColor,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Name,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: string(PartitionKey(o.ID)),
		Payload: kafkax.MustMarshal(OrderCreatedPayload{
			OrderID:         o.ID,
			CustomerName:    o.CustomerName,
			CustomerEmail:   o.CustomerEmail,
			CustomerPhone:   o.CustomerPhone,
			DeliveryAddress: o.DeliveryAddress,
			DeliveryZone:    o.DeliveryZone,
			DeliveryFee:     o.DeliveryFee,
			Subtotal:        o.Subtotal,
			TotalAmount:     o.TotalAmount,
			Items:           items,
		}),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
