package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
	"github.com/RanjithMathi/freshto-gateway/internal/order"
)

type orderServiceMock struct {
	orders []*order.Order
	err    error
}

func (m orderServiceMock) Create(ctx context.Context, req *order.CreateRequest) (*order.Order, error) {
	return nil, m.err
}

func (m orderServiceMock) ByID(ctx context.Context, id int64) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, backend.ErrNotFound
}

func (m orderServiceMock) ByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*order.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m orderServiceMock) ByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*order.Order
	for _, o := range m.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m orderServiceMock) UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error) {
	return nil, m.err
}

func testOrders() []*order.Order {
	return []*order.Order{
		{ID: 10, CustomerID: 1, Status: order.StatusConfirmed, TotalAmount: 513, CreatedAt: time.Now()},
		{ID: 11, CustomerID: 1, Status: order.StatusDelivered, TotalAmount: 630, CreatedAt: time.Now().Add(time.Hour)},
		{ID: 12, CustomerID: 2, Status: order.StatusConfirmed, TotalAmount: 99, CreatedAt: time.Now()},
	}
}

func TestListOrders_RefreshesStore(t *testing.T) {
	store := order.NewStore()
	handler := NewOrdersHandler(orderServiceMock{orders: testOrders()}, store)

	recorder := httptest.NewRecorder()
	request := withCustomer(httptest.NewRequest("GET", "/api/v1/orders", nil))

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []order.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("expected 2 orders for customer 1, got %d", len(response))
	}
	if len(store.ByCustomer(1)) != 2 {
		t.Errorf("expected store refreshed with 2 orders")
	}
}

func TestListOrders_NotFoundMeansEmptyHistory(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{err: backend.ErrNotFound}, order.NewStore())

	recorder := httptest.NewRecorder()
	request := withCustomer(httptest.NewRequest("GET", "/api/v1/orders", nil))

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []order.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("expected empty history, got %d orders", len(response))
	}
}

func TestGetOrder_OtherCustomerIsNotFound(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{orders: testOrders()}, order.NewStore())

	recorder := httptest.NewRecorder()
	request := withCustomer(httptest.NewRequest("GET", "/api/v1/orders/12", nil))
	request = withURLParam(request, "order_id", "12")

	handler.GetOrder(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestListByStatus_FiltersToCustomer(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{orders: testOrders()}, order.NewStore())

	recorder := httptest.NewRecorder()
	request := withCustomer(httptest.NewRequest("GET", "/api/v1/orders/status/CONFIRMED", nil))
	request = withURLParam(request, "status", "CONFIRMED")

	handler.ListByStatus(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []order.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].ID != 10 {
		t.Errorf("expected only customer 1's confirmed order, got %+v", response)
	}
}

func TestListByStatus_UnknownStatus(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{}, order.NewStore())

	recorder := httptest.NewRecorder()
	request := withCustomer(httptest.NewRequest("GET", "/api/v1/orders/status/TELEPORTED", nil))
	request = withURLParam(request, "status", "TELEPORTED")

	handler.ListByStatus(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
