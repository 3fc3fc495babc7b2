package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casafind/casafind/internal/domain"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

func okEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	}); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(&Config{BaseURL: srv.URL, RetryMax: 0})
	return c
}

func TestByAttributes_BuildsQueryParams(t *testing.T) {
	minPrice := 100000.0
	maxBeds := 4

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		okEnvelope(t, w, []map[string]any{{"id": "p1", "title": "Casa"}})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	got, err := c.ByAttributes(context.Background(), filters.Filters{
		Query:       "casa con alberca",
		Transaction: "sale",
		MinPrice:    &minPrice,
		MaxBedrooms: &maxBeds,
		City:        "Puebla",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected result %v", got)
	}

	want := map[string]string{
		"query":        "casa con alberca",
		"transaction":  "sale",
		"min_price":    "100000",
		"max_bedrooms": "4",
		"city":         "Puebla",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("param %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	for _, absent := range []string{"type", "max_price", "min_bedrooms", "state"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("inactive param %s must be omitted", absent)
		}
	}
}

func TestByTags_PostsQueryArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search/tags" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Query []string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Query) != 2 || body.Query[0] != "piscina" || body.Query[1] != "jardin" {
			t.Errorf("unexpected tags %v", body.Query)
		}
		okEnvelope(t, w, []map[string]any{{"id": "p2"}})
	}))
	defer srv.Close()

	got, err := newTestClient(srv).ByTags(context.Background(), []string{"piscina", "jardin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestByDescription_NotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","message":"no matches"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	got, err := newTestClient(srv).ByDescription(context.Background(), "vista al mar")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestByDescription_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","message":"db down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ByDescription(context.Background(), "casa")
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestList_PassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/properties/all" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "200" {
			t.Errorf("limit = %q, want 200", got)
		}
		okEnvelope(t, w, []map[string]any{{"id": "a"}, {"id": "b"}})
	}))
	defer srv.Close()

	got, err := newTestClient(srv).List(context.Background(), 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
}

func TestDecode_NullDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":null}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).List(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestDecode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).List(context.Background(), 10)
	if !errors.Is(err, domain.ErrBadUpstreamResponse) {
		t.Fatalf("expected ErrBadUpstreamResponse, got %v", err)
	}
}

func TestGetProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/properties/p9":
			okEnvelope(t, w, map[string]any{"id": "p9", "title": "Depa Roma"})
		default:
			http.Error(w, `{"status":"error","message":"not found"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	p, err := c.GetProperty(context.Background(), "p9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p9" || p.Title != "Depa Roma" {
		t.Errorf("unexpected property %+v", p)
	}

	if _, err := c.GetProperty(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/leads" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var lead Lead
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			t.Fatalf("decode lead: %v", err)
		}
		if lead.PropertyID != "p1" || lead.Email != "ana@example.com" {
			t.Errorf("unexpected lead %+v", lead)
		}
		w.Write([]byte(`{"status":"success","message":"lead received"}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(srv).CreateLead(context.Background(), Lead{
		PropertyID: "p1",
		Name:       "Ana",
		Email:      "ana@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "lead received" {
		t.Errorf("message = %q", msg)
	}
}

func TestCreateLead_Validation(t *testing.T) {
	c := NewClient(&Config{BaseURL: "http://unused"})
	if _, err := c.CreateLead(context.Background(), Lead{Name: "Ana"}); err == nil {
		t.Fatal("expected validation error for missing property_id")
	}
}

func TestSendsBearerWhenConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("Authorization = %q", got)
		}
		okEnvelope(t, w, []map[string]any{})
	}))
	defer srv.Close()

	c := NewClient(&Config{BaseURL: srv.URL, APIKey: "sekret", RetryMax: 0})
	if _, err := c.List(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
