package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, customer_name, customer_email, customer_phone, delivery_address,
	delivery_zone, delivery_fee, subtotal, total_amount, status, created_at`

// CreateTx persists the order and all its line items in one transaction.
// Callers never observe an order without its items. The order's ID and
// CreatedAt (and each item's ID) are filled in on success.
func (r *Repo) CreateTx(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(customer_name, customer_email, customer_phone, delivery_address,
		                   delivery_zone, delivery_fee, subtotal, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.DeliveryAddress,
		o.DeliveryZone, o.DeliveryFee, o.Subtotal, o.TotalAmount, string(o.Status)).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items(order_id, product_id, product_name, quantity,
			                        selected_size, selected_color, price_at_purchase)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, it.OrderID, it.ProductID, it.ProductName, it.Quantity,
			it.SelectedSize, it.SelectedColor, it.PriceAtPurchase).
			Scan(&it.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *Repo) GetStatus(ctx context.Context, id int64) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

func (r *Repo) List(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC, id DESC`)
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *Repo) list(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

// UpdateStatus sets the status and returns the updated order. Any defined
// status is accepted here; transition policy lives in the service.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, s Status) (*Order, error) {
	row := r.DB.QueryRow(ctx, `UPDATE orders SET status=$2 WHERE id=$1 RETURNING `+orderCols, id, string(s))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// Stats computes the dashboard aggregates in one round-trip. Cancelled
// orders are excluded from revenue.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := r.DB.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status='pending'),
		       count(*) FILTER (WHERE status='delivered'),
		       COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'), 0),
		       (SELECT count(*) FROM products),
		       (SELECT count(*) FROM users)
		FROM orders
	`).Scan(&st.TotalOrders, &st.PendingOrders, &st.DeliveredOrders, &st.Revenue, &st.ProductCount, &st.UserCount)
	return st, err
}

func (r *Repo) fetchItems(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity,
		       selected_size, selected_color, price_at_purchase
		FROM order_items WHERE order_id = ANY($1) ORDER BY id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.SelectedSize, &it.SelectedColor, &it.PriceAtPurchase); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var status string
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.DeliveryAddress,
		&o.DeliveryZone, &o.DeliveryFee, &o.Subtotal, &o.TotalAmount, &status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}
