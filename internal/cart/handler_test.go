package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/elegantshop/storefront-backend/internal/storage"
)

func makeAppWithCartHandler() *fiber.App {
	app := fiber.New()
	NewHandler(newTestService(storage.NewMemoryStore())).RegisterRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	app := makeAppWithCartHandler()

	// ensure routes registered
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, path := range []string{"/api/v1/cart", "/api/v1/cart/items", "/api/v1/cart/items/:id", "/api/v1/cart/coupon"} {
		if !routes[path] {
			t.Fatalf("expected route %q to be registered", path)
		}
	}

	// empty cart returns a zero summary
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for GET cart, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"itemCount":0`) {
		t.Fatalf("expected empty summary, got %s", string(b))
	}

	// add a product
	req2 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1,"quantity":2}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add item, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"itemCount":2`) {
		t.Fatalf("expected itemCount 2, got %s", string(b2))
	}

	// unknown product
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":42}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res3.StatusCode)
	}

	// free-form quantity clamps silently
	req4 := httptest.NewRequest("PATCH", "/api/v1/cart/items/1", strings.NewReader(`{"quantity":99}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clamped quantity, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"itemCount":10`) {
		t.Fatalf("expected itemCount clamped to 10, got %s", string(b4))
	}

	// a single increase past the maximum is rejected
	req5 := httptest.NewRequest("PATCH", "/api/v1/cart/items/1", strings.NewReader(`{"action":"increase"}`))
	req5.Header.Set("Content-Type", "application/json")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for increase at max, got %d", res5.StatusCode)
	}

	// quantity-set on a missing item is a hard failure
	req6 := httptest.NewRequest("PATCH", "/api/v1/cart/items/777", strings.NewReader(`{"quantity":1}`))
	req6.Header.Set("Content-Type", "application/json")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", res6.StatusCode)
	}

	// removal of a missing item is a silent no-op
	req7 := httptest.NewRequest("DELETE", "/api/v1/cart/items/777", nil)
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for idempotent remove, got %d", res7.StatusCode)
	}

	// clear the cart
	req8 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	res8, _ := app.Test(req8)
	if res8.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear cart, got %d", res8.StatusCode)
	}
}

func TestCartRoutes_Coupon(t *testing.T) {
	app := makeAppWithCartHandler()

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":3}`))
	req.Header.Set("Content-Type", "application/json")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("add item failed: %d", res.StatusCode)
	}

	// invalid code
	req2 := httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"BOGUS"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid coupon, got %d", res2.StatusCode)
	}

	// valid code, case-insensitive
	req3 := httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"save20"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for valid coupon, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"SAVE20"`) {
		t.Fatalf("expected normalized coupon code in response, got %s", string(b3))
	}

	// remove coupon
	req4 := httptest.NewRequest("DELETE", "/api/v1/cart/coupon", nil)
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove coupon, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"discount":0`) {
		t.Fatalf("expected zero discount after removal, got %s", string(b4))
	}
}

func TestCartRoutes_SessionsAreIsolated(t *testing.T) {
	app := makeAppWithCartHandler()

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "alice")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("add item failed: %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-Session-ID", "bob")
	res2, _ := app.Test(req2)
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"itemCount":0`) {
		t.Fatalf("expected bob's cart to be empty, got %s", string(b2))
	}
}
