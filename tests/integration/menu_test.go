//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListMenu(t *testing.T) {
	resp := doGet(t, "/api/menu")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	items := decodeJSON[[]menuItemResponse](t, resp)
	if len(items) < 6 {
		t.Fatalf("expected at least 6 menu items, got %d", len(items))
	}
}

func TestListMenu_NoAuth(t *testing.T) {
	resp := doGetWithAuth(t, "/api/menu", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestListMenu_InvalidKey(t *testing.T) {
	resp := doGetWithAuth(t, "/api/menu", "wrong-key")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMenu_Fields(t *testing.T) {
	resp := doGet(t, "/api/menu")
	defer resp.Body.Close()

	items := decodeJSON[[]menuItemResponse](t, resp)

	var nasiGoreng *menuItemResponse
	for i := range items {
		if items[i].Name == "Nasi Goreng Spesial" {
			nasiGoreng = &items[i]
			break
		}
	}
	if nasiGoreng == nil {
		t.Fatal("seeded item 'Nasi Goreng Spesial' not found")
	}
	if nasiGoreng.Category != "makanan" {
		t.Errorf("category: got %q, want %q", nasiGoreng.Category, "makanan")
	}
	if nasiGoreng.Price != "25000" {
		t.Errorf("price: got %q, want %q", nasiGoreng.Price, "25000")
	}
	if nasiGoreng.Status != "tersedia" {
		t.Errorf("status: got %q, want %q", nasiGoreng.Status, "tersedia")
	}
}

func TestGetMenuItem_NotFound(t *testing.T) {
	resp := doGet(t, "/api/menu/99999")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Code != 404 {
		t.Errorf("error code: got %d, want 404", errResp.Code)
	}
}

func TestCreateMenuItem(t *testing.T) {
	resp := doPost(t, "/api/menu", map[string]any{
		"name":     "Sate Ayam",
		"category": "makanan",
		"price":    28000,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	item := decodeJSON[menuItemResponse](t, resp)
	if item.ID == 0 {
		t.Error("expected assigned id")
	}
	if item.Price != "28000" {
		t.Errorf("price: got %q, want %q", item.Price, "28000")
	}
}
