package product

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			tok := &jwt.Token{Claims: claims}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newTestHandler(seed []Product, allowReset bool) (*Handler, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	return NewHandler(NewService(repo, zerolog.Nop()), allowReset), repo
}

func TestProductRoutes_Registered(t *testing.T) {
	h, _ := newTestHandler(nil, false)
	app := makeAppWithProductHandler(h)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /api/v1/products",
		"GET /api/v1/product/:id",
		"POST /api/v1/products",
		"PUT /api/v1/product/:id",
		"DELETE /api/v1/product/:id",
		"POST /dev/reset-products",
	} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}
}

func TestGetProducts(t *testing.T) {
	h, _ := newTestHandler(SampleCatalog(), false)
	app := makeAppWithProductHandler(h)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var out []Product
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(SampleCatalog()) {
		t.Fatalf("expected %d products, got %d", len(SampleCatalog()), len(out))
	}
}

func TestGetProduct(t *testing.T) {
	h, _ := newTestHandler(SampleCatalog(), false)
	app := makeAppWithProductHandler(h)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Blue Pottery Vase") {
		t.Fatalf("unexpected body %s", b)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/missing", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	h, _ := newTestHandler(SampleCatalog(), false)
	app := makeAppWithProductHandler(h)

	body := `{"name":"Clay Mug","price":300,"artisan":"Ramesh Kumhar","category":"pottery"}`
	cases := []struct {
		method, path, body string
	}{
		{"POST", "/api/v1/products", body},
		{"PUT", "/api/v1/product/1", body},
		{"DELETE", "/api/v1/product/1", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		res, _ := app.Test(req)
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, res.StatusCode)
		}
	}
}

func TestCreateProduct(t *testing.T) {
	h, repo := newTestHandler(nil, false)
	app := makeAppWithProductHandler(h)

	req := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(`{"name":" Clay Mug ","price":300,"artisan":"Ramesh Kumhar","category":"Pottery"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, b)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Name != "Clay Mug" || created.Category != "pottery" {
		t.Fatalf("expected normalized product, got %+v", created)
	}
	if created.CreatedAt == nil || created.UpdatedAt == nil {
		t.Fatalf("expected timestamps to be set")
	}
	if all, _ := repo.List(); len(all) != 1 {
		t.Fatalf("expected 1 stored product, got %d", len(all))
	}
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(nil, false)
	app := makeAppWithProductHandler(h)

	req := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(`{"name":"","price":-1,"category":"ceramics"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"name", "price", "artisan", "category"} {
		if _, ok := out.Errors[key]; !ok {
			t.Fatalf("expected validation error for %q, got %v", key, out.Errors)
		}
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	h, repo := newTestHandler(SampleCatalog(), false)
	app := makeAppWithProductHandler(h)

	req := httptest.NewRequest("PUT", "/api/v1/product/1", strings.NewReader(`{"name":"Large Terracotta Pot","price":1500,"artisan":"Ramesh Kumhar","category":"pottery"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	got, err := repo.GetByID("1")
	if err != nil || got.Name != "Large Terracotta Pot" || got.Price != 1500 {
		t.Fatalf("update not applied: %+v, %v", got, err)
	}

	req = httptest.NewRequest("PUT", "/api/v1/product/nope", strings.NewReader(`{"name":"X","price":1,"artisan":"Y","category":"pottery"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/product/1", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if _, err := repo.GetByID("1"); err != ErrNotFound {
		t.Fatalf("expected product to be deleted, got %v", err)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/product/1", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}

func TestResetProducts(t *testing.T) {
	h, _ := newTestHandler(nil, false)
	app := makeAppWithProductHandler(h)
	res, _ := app.Test(httptest.NewRequest("POST", "/dev/reset-products", nil))
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 when reset disabled, got %d", res.StatusCode)
	}

	h, repo := newTestHandler(nil, true)
	app = makeAppWithProductHandler(h)

	// no body falls back to the sample catalog
	res, _ = app.Test(httptest.NewRequest("POST", "/dev/reset-products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if all, _ := repo.List(); len(all) != len(SampleCatalog()) {
		t.Fatalf("expected sample catalog, got %d products", len(all))
	}

	// explicit empty list clears the catalog
	req := httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if all, _ := repo.List(); len(all) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(all))
	}

	req = httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[{"id":"x","name":"Bad","price":1,"artisan":"A","category":"plastic"}]`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid rows, got %d", res.StatusCode)
	}
}
