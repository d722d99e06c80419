package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/catalog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/zones"
)

const (
	testToken  = "test-admin-token"
	testSecret = "test-internal-secret"
)

type fakeOrderService struct {
	createErr   error
	createCalls int
	lastSub     orders.Submission

	getOrder    *orders.Order
	list        []orders.Order
	recentLimit int
	updateErr   error
	statsVal    orders.Stats
}

func (f *fakeOrderService) Create(_ context.Context, sub orders.Submission) (*orders.Order, error) {
	f.createCalls++
	f.lastSub = sub
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &orders.Order{
		ID:            42,
		Status:        orders.StatusPending,
		CustomerEmail: sub.CustomerEmail,
		DeliveryZone:  sub.DeliveryZone,
		DeliveryFee:   sub.DeliveryFee,
		Subtotal:      sub.Subtotal,
		TotalAmount:   sub.TotalAmount,
	}, nil
}

func (f *fakeOrderService) Get(_ context.Context, id int64) (*orders.Order, error) {
	if f.getOrder == nil || f.getOrder.ID != id {
		return nil, orders.ErrNotFound
	}
	return f.getOrder, nil
}

func (f *fakeOrderService) List(_ context.Context) ([]orders.Order, error) {
	if f.list == nil {
		return []orders.Order{}, nil
	}
	return f.list, nil
}

func (f *fakeOrderService) Recent(_ context.Context, limit int) ([]orders.Order, error) {
	f.recentLimit = limit
	return []orders.Order{}, nil
}

func (f *fakeOrderService) UpdateStatus(_ context.Context, id int64, s orders.Status) (*orders.Order, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if !s.Valid() {
		return nil, &orders.ValidationError{Rule: "unknown status", Detail: string(s)}
	}
	return &orders.Order{ID: id, Status: s}, nil
}

func (f *fakeOrderService) Stats(_ context.Context) (orders.Stats, error) { return f.statsVal, nil }

type fakeZoneStore struct {
	zones     []zones.Zone
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeZoneStore) List(_ context.Context) ([]zones.Zone, error) {
	if f.zones == nil {
		return []zones.Zone{}, nil
	}
	return f.zones, nil
}

func (f *fakeZoneStore) Create(_ context.Context, name string, price float64) (*zones.Zone, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &zones.Zone{ID: 1, Name: name, Price: price}, nil
}

func (f *fakeZoneStore) Update(_ context.Context, id int64, name string, price float64) (*zones.Zone, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &zones.Zone{ID: id, Name: name, Price: price}, nil
}

func (f *fakeZoneStore) Delete(_ context.Context, _ int64) error { return f.deleteErr }

type fakeProductStore struct{ products []catalog.Product }

func (f *fakeProductStore) List(_ context.Context) ([]catalog.Product, error) {
	if f.products == nil {
		return []catalog.Product{}, nil
	}
	return f.products, nil
}

type fakeDispatcher struct {
	calls []maillog.Type
	err   error
}

func (f *fakeDispatcher) Send(_ context.Context, t maillog.Type, _ string, _ map[string]any) error {
	f.calls = append(f.calls, t)
	return f.err
}

type fakeLogStore struct {
	entries []maillog.Entry
	limit   int
}

func (f *fakeLogStore) List(_ context.Context, limit int) ([]maillog.Entry, error) {
	f.limit = limit
	if f.entries == nil {
		return []maillog.Entry{}, nil
	}
	return f.entries, nil
}

type testDeps struct {
	svc  *fakeOrderService
	zs   *fakeZoneStore
	ps   *fakeProductStore
	snd  *fakeDispatcher
	logs *fakeLogStore
}

func newTestAPI(d *testDeps) *chi.Mux {
	if d.svc == nil {
		d.svc = &fakeOrderService{}
	}
	if d.zs == nil {
		d.zs = &fakeZoneStore{}
	}
	if d.ps == nil {
		d.ps = &fakeProductStore{}
	}
	if d.snd == nil {
		d.snd = &fakeDispatcher{}
	}
	if d.logs == nil {
		d.logs = &fakeLogStore{}
	}
	r := NewRouter()
	(&API{
		Orders:         NewOrdersHandler(d.svc, nil),
		Zones:          NewZonesHandler(d.zs),
		Products:       &ProductsHandler{Store: d.ps},
		Emails:         NewEmailsHandler(d.snd, d.logs),
		AdminToken:     testToken,
		InternalSecret: testSecret,
	}).Register(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func asAdmin() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}
