package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestPublicPagesRender(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	cases := map[string]string{
		"/":             "Professional Photo Editing",
		"/about":        "Our Story",
		"/services":     "How We Work",
		"/pricing":      "Simple Pricing",
		"/portfolio":    "Before and After",
		"/team":         "Meet the Team",
		"/how-it-works": "The Process",
		"/blog":         "Five Tips for Better Product Photos",
		"/contact":      "hello@example.com",
	}

	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, path, nil, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Fatalf("expected HTML, got %q", ct)
			}
			if !strings.Contains(rec.Body.String(), want) {
				t.Fatalf("expected %q in %s", want, path)
			}
		})
	}
}

func TestPagesKeepDefaultsAfterEarlierSectionReads(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	if rec := env.do(t, http.MethodGet, "/services", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/pricing", nil, nil); !strings.Contains(rec.Body.String(), "Simple Pricing") {
		t.Fatalf("pricing hero missing after visiting /services: %s", rec.Body.String())
	}

	if rec := env.do(t, http.MethodGet, "/api/content/home?section=banner", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/", nil, nil); !strings.Contains(rec.Body.String(), "How do I send my photos?") {
		t.Fatalf("home FAQ missing after reading the banner section: %s", rec.Body.String())
	}
}

func TestServicesPageShowsPricingPlans(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	body := `{"title":"Plans","plans":[{"name":"Starter Edit","price":9,"recommended":true}]}`
	if rec := env.putJSON(t, "/api/content/pricing?section=plans", body, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/services", nil, nil)
	out := rec.Body.String()
	if !strings.Contains(out, "Starter Edit") || !strings.Contains(out, "Most Popular") {
		t.Fatalf("services page should render the pricing plans, got %s", out)
	}
}

func TestArticlePage(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rec := env.do(t, http.MethodGet, "/blog/five-tips-for-better-product-photos", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h2>Light matters most</h2>") {
		t.Fatalf("expected rendered markdown, got %s", rec.Body.String())
	}

	missing := env.do(t, http.MethodGet, "/blog/no-such-post", nil, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	page := env.do(t, http.MethodGet, "/nowhere", nil, nil)
	if page.Code != http.StatusNotFound || !strings.Contains(page.Body.String(), "404") {
		t.Fatalf("expected not found page, got %d", page.Code)
	}

	api := env.do(t, http.MethodGet, "/api/nowhere", nil, nil)
	if api.Code != http.StatusNotFound || !strings.Contains(api.Body.String(), `"error"`) {
		t.Fatalf("expected JSON 404, got %d %s", api.Code, api.Body.String())
	}
}
