package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/GrandsonfrmO/galaxyshop-backend/internal/kafka"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/redisx"
)

type Sender interface {
	Send(ctx context.Context, t maillog.Type, to string, data map[string]any) error
}

// OrderMailer consumes order.created events and fires the customer
// confirmation plus the admin alert as two independent attempts.
type OrderMailer struct {
	Dispatcher Sender
	Redis      *redis.Client // nil disables event dedup
	AdminEmail string
}

// HandleOrderCreated is mounted as the kafka consumer handler. It returns
// nil in every outcome other than infrastructure failure: provider errors
// are recorded in email_logs, not redelivered, so there is no automatic
// re-send loop.
func (m *OrderMailer) HandleOrderCreated(ctx context.Context, msg kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		log.Printf("mailer: drop undecodable message: %v", err)
		return nil
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	if m.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "mailer", env.EventID)
		if seen, _ := redisx.Exists(ctx, m.Redis, dkey); seen {
			return nil
		}
		_ = m.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		log.Printf("mailer: drop order.created with bad payload: %v", err)
		return nil
	}

	data := orderData(p)
	if err := m.Dispatcher.Send(ctx, maillog.TypeOrderConfirmation, p.CustomerEmail, data); err != nil {
		log.Printf("mailer: order %d confirmation to %s: %v", p.OrderID, p.CustomerEmail, err)
	}
	if err := m.Dispatcher.Send(ctx, maillog.TypeAdminNotification, m.AdminEmail, data); err != nil {
		log.Printf("mailer: order %d admin alert: %v", p.OrderID, err)
	}
	return nil
}

func orderData(p orders.OrderCreatedPayload) map[string]any {
	return map[string]any{
		"OrderID":     p.OrderID,
		"Name":        p.CustomerName,
		"Email":       p.CustomerEmail,
		"Phone":       p.CustomerPhone,
		"Address":     p.DeliveryAddress,
		"Zone":        p.DeliveryZone,
		"DeliveryFee": p.DeliveryFee,
		"Subtotal":    p.Subtotal,
		"Total":       p.TotalAmount,
		"Items":       p.Items,
	}
}
