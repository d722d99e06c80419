package zones

import "time"

// Zone is a named shipping destination tier with a flat delivery fee.
// Orders snapshot both the name and the fee at creation time, so deleting
// or renaming a zone never touches historical orders.
type Zone struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}
