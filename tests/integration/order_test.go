//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"strconv"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// menuItemID looks up a seeded menu item's ID by name.
func menuItemID(t *testing.T, name string) int64 {
	t.Helper()

	resp := doGet(t, "/api/menu")
	defer resp.Body.Close()
	items := decodeJSON[[]menuItemResponse](t, resp)

	for _, item := range items {
		if item.Name == name {
			return item.ID
		}
	}
	t.Fatalf("menu item %q not found", name)
	return 0
}

// placeOrder places an order and returns it.
func placeOrder(t *testing.T, req orderRequest) orderResponse {
	t.Helper()

	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place order: expected 201, got %d", resp.StatusCode)
	}
	return decodeJSON[orderResponse](t, resp)
}

// advanceOrder moves an order to the given status.
func advanceOrder(t *testing.T, id int64, status string) orderResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPatch, orderStatusPath(id), statusRequest{Status: status}, testAPIKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance order %d to %s: expected 200, got %d", id, status, resp.StatusCode)
	}
	return decodeJSON[orderResponse](t, resp)
}

func orderStatusPath(id int64) string {
	return "/api/orders/" + strconv.FormatInt(id, 10) + "/status"
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{TableNo: "T1", Items: []orderItemRequest{}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_UnknownMenuItem(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{
		TableNo: "T1",
		Items:   []orderItemRequest{{MenuItemID: 99999, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_Pricing(t *testing.T) {
	nasi := menuItemID(t, "Nasi Goreng Spesial") // 25000
	teh := menuItemID(t, "Es Teh Manis")         // 8000

	order := placeOrder(t, orderRequest{
		TableNo: "T2",
		Items: []orderItemRequest{
			{MenuItemID: nasi, Quantity: 2},
			{MenuItemID: teh, Quantity: 1},
		},
	})

	if order.Status != "pending" {
		t.Errorf("status: got %q, want pending", order.Status)
	}
	if order.Total != "58000" {
		t.Errorf("total: got %q, want 58000", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(order.Items))
	}
}

func TestOrderLifecycle(t *testing.T) {
	teh := menuItemID(t, "Es Teh Manis")
	order := placeOrder(t, orderRequest{
		TableNo: "T3",
		Items:   []orderItemRequest{{MenuItemID: teh, Quantity: 2}},
	})

	got := advanceOrder(t, order.ID, "proses")
	if got.Status != "proses" {
		t.Fatalf("status after advance: got %q, want proses", got.Status)
	}

	// proses -> pending is not a legal edge.
	resp := doJSON(t, http.MethodPatch, orderStatusPath(order.ID), statusRequest{Status: "pending"}, testAPIKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSettlePayment_Cash(t *testing.T) {
	nasi := menuItemID(t, "Nasi Goreng Spesial")
	order := placeOrder(t, orderRequest{
		TableNo: "T4",
		Items:   []orderItemRequest{{MenuItemID: nasi, Quantity: 1}}, // 25000
	})
	advanceOrder(t, order.ID, "proses")

	resp := doPost(t, "/api/payments", paymentRequest{
		OrderID:  order.ID,
		Method:   "tunai",
		Received: 50000,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	tx := decodeJSON[transactionResponse](t, resp)
	if !uuidPattern.MatchString(tx.ID) {
		t.Errorf("transaction id %q is not a UUID", tx.ID)
	}
	if tx.Amount != "25000" {
		t.Errorf("amount: got %q, want 25000", tx.Amount)
	}
	if tx.Change != "25000" {
		t.Errorf("change: got %q, want 25000", tx.Change)
	}

	// Settlement completes the order.
	getResp := doGet(t, "/api/orders/"+strconv.FormatInt(order.ID, 10))
	defer getResp.Body.Close()
	settled := decodeJSON[orderResponse](t, getResp)
	if settled.Status != "selesai" {
		t.Errorf("order status after settlement: got %q, want selesai", settled.Status)
	}
}

func TestSettlePayment_InsufficientCash(t *testing.T) {
	nasi := menuItemID(t, "Nasi Goreng Spesial")
	order := placeOrder(t, orderRequest{
		TableNo: "T5",
		Items:   []orderItemRequest{{MenuItemID: nasi, Quantity: 1}},
	})
	advanceOrder(t, order.ID, "proses")

	resp := doPost(t, "/api/payments", paymentRequest{
		OrderID:  order.ID,
		Method:   "tunai",
		Received: 10000,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestSettlePayment_PendingOrder(t *testing.T) {
	teh := menuItemID(t, "Es Teh Manis")
	order := placeOrder(t, orderRequest{
		TableNo: "T6",
		Items:   []orderItemRequest{{MenuItemID: teh, Quantity: 1}},
	})

	// Still pending: not payable.
	resp := doPost(t, "/api/payments", paymentRequest{
		OrderID: order.ID,
		Method:  "qris",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}
