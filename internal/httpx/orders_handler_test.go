package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
)

func validCreateBody() string {
	return `{
		"customerName": "Mamadou Diallo",
		"customerEmail": "mamadou@example.com",
		"customerPhone": "+224620000000",
		"deliveryAddress": "Quartier Kipe, Conakry",
		"deliveryZone": "Conakry",
		"deliveryFee": 5000,
		"subtotal": 150000,
		"totalAmount": 155000,
		"items": [
			{"productId": 1, "productName": "Nebula Tee", "quantity": 2,
			 "selectedSize": "M", "selectedColor": "black", "priceAtPurchase": 75000}
		]
	}`
}

func TestCreateOrderOK(t *testing.T) {
	d := &testDeps{}
	r := newTestAPI(d)

	rec := doRequest(t, r, http.MethodPost, "/api/orders", validCreateBody(), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		Order orders.Order `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Order.ID != 42 || resp.Order.Status != orders.StatusPending {
		t.Errorf("order = %+v", resp.Order)
	}
	if d.svc.lastSub.DeliveryZone != "Conakry" || len(d.svc.lastSub.Items) != 1 {
		t.Errorf("submission = %+v", d.svc.lastSub)
	}
}

func TestCreateOrderInvalidEmail(t *testing.T) {
	d := &testDeps{}
	r := newTestAPI(d)

	body := strings.Replace(validCreateBody(), "mamadou@example.com", "not-an-email", 1)
	rec := doRequest(t, r, http.MethodPost, "/api/orders", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "invalid email") {
		t.Errorf("body %s does not mention invalid email", rec.Body)
	}
	if d.svc.createCalls != 0 {
		t.Error("service must not be reached on a shape-invalid payload")
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"no name", strings.Replace(validCreateBody(), `"Mamadou Diallo"`, `""`, 1), "missing field: customerName"},
		{"no items", `{"customerName":"A","customerEmail":"a@b.com","customerPhone":"1","deliveryAddress":"x","deliveryZone":"Conakry","deliveryFee":5000,"subtotal":1,"totalAmount":5001,"items":[]}`, "missing field: items"},
		{"bad json", `{not json`, "invalid json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &testDeps{}
			r := newTestAPI(d)

			rec := doRequest(t, r, http.MethodPost, "/api/orders", tc.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Errorf("body %s does not contain %q", rec.Body, tc.want)
			}
			if d.svc.createCalls != 0 {
				t.Error("service must not be reached")
			}
		})
	}
}

func TestCreateOrderBusinessRejection(t *testing.T) {
	d := &testDeps{svc: &fakeOrderService{
		createErr: &orders.ValidationError{Rule: "insufficient stock", Detail: "Nebula Tee: requested 99, available 10"},
	}}
	r := newTestAPI(d)

	rec := doRequest(t, r, http.MethodPost, "/api/orders", validCreateBody(), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "insufficient stock") {
		t.Errorf("body = %s", rec.Body)
	}
}

// Store failures surface as a generic 500; internals never leak.
func TestCreateOrderPersistenceError(t *testing.T) {
	d := &testDeps{svc: &fakeOrderService{createErr: errors.New("pq: connection refused at 10.0.0.5")}}
	r := newTestAPI(d)

	rec := doRequest(t, r, http.MethodPost, "/api/orders", validCreateBody(), nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("response leaks internals: %s", rec.Body)
	}
}

func TestAdminOrdersRequireAuth(t *testing.T) {
	r := newTestAPI(&testDeps{})

	rec := doRequest(t, r, http.MethodGet, "/api/admin/orders", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without credential = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/admin/orders", "", map[string]string{"Authorization": "Bearer wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/admin/orders", "", asAdmin())
	if rec.Code != http.StatusOK {
		t.Fatalf("status with valid token = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Errorf("expected a JSON array, got %s", rec.Body)
	}
}

func TestGetOrder(t *testing.T) {
	d := &testDeps{svc: &fakeOrderService{getOrder: &orders.Order{ID: 7, Status: orders.StatusConfirmed}}}
	r := newTestAPI(d)

	rec := doRequest(t, r, http.MethodGet, "/api/admin/orders/7", "", asAdmin())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/admin/orders/8", "", asAdmin())
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing order: status = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/admin/orders/xyz", "", asAdmin())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d", rec.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newTestAPI(&testDeps{})

	rec := doRequest(t, r, http.MethodPatch, "/api/admin/orders/7/status", `{"status":"shipped"}`, asAdmin())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var o orders.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if o.Status != orders.StatusShipped {
		t.Errorf("order status = %q", o.Status)
	}

	rec = doRequest(t, r, http.MethodPatch, "/api/admin/orders/7/status", `{"status":"teleported"}`, asAdmin())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: code = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodPatch, "/api/admin/orders/7/status", `{}`, asAdmin())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing status: code = %d", rec.Code)
	}
}

func TestDashboardStats(t *testing.T) {
	d := &testDeps{svc: &fakeOrderService{statsVal: orders.Stats{TotalOrders: 12, PendingOrders: 3, Revenue: 1860000}}}
	r := newTestAPI(d)

	rec := doRequest(t, r, http.MethodGet, "/api/admin/dashboard/stats", "", asAdmin())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st orders.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.TotalOrders != 12 || st.Revenue != 1860000 {
		t.Errorf("stats = %+v", st)
	}
}

func TestRecentOrdersLimit(t *testing.T) {
	d := &testDeps{}
	r := newTestAPI(d)

	doRequest(t, r, http.MethodGet, "/api/admin/dashboard/recent-orders?limit=3", "", asAdmin())
	if d.svc.recentLimit != 3 {
		t.Errorf("limit = %d, want 3", d.svc.recentLimit)
	}

	doRequest(t, r, http.MethodGet, "/api/admin/dashboard/recent-orders", "", asAdmin())
	if d.svc.recentLimit != 5 {
		t.Errorf("default limit = %d, want 5", d.svc.recentLimit)
	}
}
