package recommended

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/wichananm65/artisan-market-backend/internal/product"
	"github.com/wichananm65/artisan-market-backend/internal/search"
)

type responseBody struct {
	Products         []product.Product `json:"products"`
	Reasoning        string            `json:"reasoning"`
	Confidence       float64           `json:"confidence"`
	Categories       []string          `json:"categories"`
	SuggestedFilters map[string]any    `json:"suggestedFilters"`
}

type brokenCatalog struct{}

func (brokenCatalog) CatalogExcluding([]string) ([]product.Product, error) {
	return nil, errors.New("connection refused")
}

type stubAssistant struct {
	sug   Suggestion
	err   error
	calls int
}

func (a *stubAssistant) Recommend(context.Context, string, []product.Product) (Suggestion, error) {
	a.calls++
	return a.sug, a.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	engine, err := search.NewEngine(search.DefaultRules())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	catalog := product.NewService(product.NewInMemoryRepository(product.SampleCatalog()), zerolog.Nop())
	return NewService(engine, catalog, 10, zerolog.Nop())
}

func makeApp(s *Service) *fiber.App {
	app := fiber.New()
	NewHandler(s).RegisterPublicRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (int, responseBody) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out responseBody
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func productIDs(ps []product.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestPostRecommendations(t *testing.T) {
	app := makeApp(newTestService(t))

	status, out := postJSON(t, app, `{"userPrompt":"poterry items under 2000"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := productIDs(out.Products); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected only the terracotta pot, got %v", got)
	}
	if len(out.Categories) != 1 || out.Categories[0] != "pottery" {
		t.Fatalf("expected pottery category, got %v", out.Categories)
	}
	if out.SuggestedFilters["category"] != "pottery" {
		t.Fatalf("expected suggested category, got %v", out.SuggestedFilters)
	}
	if !strings.Contains(out.Reasoning, "pottery") {
		t.Fatalf("unexpected reasoning %q", out.Reasoning)
	}
}

func TestPostRecommendations_BadRequests(t *testing.T) {
	app := makeApp(newTestService(t))

	for _, body := range []string{`{"userPrompt":""}`, `{"userPrompt":"   "}`, `{}`, `{not json`} {
		if status, _ := postJSON(t, app, body); status != fiber.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, status)
		}
	}
}

func TestPostRecommendations_ExcludeAndMax(t *testing.T) {
	app := makeApp(newTestService(t))

	status, out := postJSON(t, app, `{"userPrompt":"poterry items under 2000","excludeProducts":["1"]}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(out.Products) != 0 {
		t.Fatalf("expected excluded product to be gone, got %v", productIDs(out.Products))
	}
	if !strings.Contains(out.Reasoning, "no products matched") {
		t.Fatalf("expected zero-result reasoning, got %q", out.Reasoning)
	}

	_, out = postJSON(t, app, `{"userPrompt":"xyzzy","maxResults":3}`)
	if len(out.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(out.Products))
	}

	// maxResults <= 0 falls back to the service default
	_, out = postJSON(t, app, `{"userPrompt":"xyzzy","maxResults":0}`)
	if len(out.Products) != 10 {
		t.Fatalf("expected default of 10 products, got %d", len(out.Products))
	}
}

func TestPostRecommendations_Preferences(t *testing.T) {
	app := makeApp(newTestService(t))

	_, out := postJSON(t, app, `{"userPrompt":"something to wear","userPreferences":{"maxPrice":1000}}`)
	got := productIDs(out.Products)
	if len(got) == 0 || got[0] != "6" {
		t.Fatalf("expected the jhumka to rank first, got %v", got)
	}
	for _, p := range out.Products {
		if p.Price > 1000 {
			t.Fatalf("preference max price ignored: %+v", p)
		}
	}
}

func TestGetSearch(t *testing.T) {
	app := makeApp(newTestService(t))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/product/search?q=jewlery", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var out responseBody
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Products) != 2 {
		t.Fatalf("expected both jewelry products, got %v", productIDs(out.Products))
	}
	for _, p := range out.Products {
		if p.Category != "jewelry" {
			t.Fatalf("unexpected category %q", p.Category)
		}
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/search?q=jewlery&limit=1", nil))
	_ = json.NewDecoder(res.Body).Decode(&out)
	if len(out.Products) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(out.Products))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/search", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", res.StatusCode)
	}
}

func TestCatalogUnavailable(t *testing.T) {
	engine, _ := search.NewEngine(search.DefaultRules())
	app := makeApp(NewService(engine, brokenCatalog{}, 10, zerolog.Nop()))

	if status, _ := postJSON(t, app, `{"userPrompt":"pottery"}`); status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}

func TestAssistant_AcceptedAnswer(t *testing.T) {
	a := &stubAssistant{sug: Suggestion{ProductIDs: []string{"4", "3"}, Reasoning: "Warm textiles for winter.", Confidence: 0.9}}
	s := newTestService(t).WithAssistant(a)

	resp, err := s.Recommend(context.Background(), Request{UserPrompt: "something warm", MaxResults: 5})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if a.calls != 1 {
		t.Fatalf("expected assistant to be called once, got %d", a.calls)
	}
	if got := productIDs(resp.Products); len(got) != 2 || got[0] != "4" || got[1] != "3" {
		t.Fatalf("expected assistant order, got %v", got)
	}
	if resp.Reasoning != "Warm textiles for winter." || resp.Confidence != 0.9 {
		t.Fatalf("assistant reasoning not used: %+v", resp)
	}
	if len(resp.Categories) != 1 || resp.Categories[0] != "textiles" {
		t.Fatalf("expected single textiles category, got %v", resp.Categories)
	}
}

func TestAssistant_FallsBackToEngine(t *testing.T) {
	cases := map[string]*stubAssistant{
		"error":          {err: errors.New("model timeout")},
		"unknown id":     {sug: Suggestion{ProductIDs: []string{"99"}, Reasoning: "x", Confidence: 0.5}},
		"duplicate id":   {sug: Suggestion{ProductIDs: []string{"1", "1"}, Reasoning: "x", Confidence: 0.5}},
		"bad confidence": {sug: Suggestion{ProductIDs: []string{"1"}, Reasoning: "x", Confidence: 1.5}},
		"no reasoning":   {sug: Suggestion{ProductIDs: []string{"1"}, Confidence: 0.5}},
		"excluded id":    {sug: Suggestion{ProductIDs: []string{"2"}, Reasoning: "x", Confidence: 0.5}},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestService(t).WithAssistant(a)
			resp, err := s.Recommend(context.Background(), Request{UserPrompt: "poterry items under 2000", ExcludeProducts: []string{"2"}})
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got := productIDs(resp.Products); len(got) != 1 || got[0] != "1" {
				t.Fatalf("expected engine result, got %v", got)
			}
			if resp.SuggestedFilters == nil {
				t.Fatalf("expected engine response with suggested filters")
			}
		})
	}
}
