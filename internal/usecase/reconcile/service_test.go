package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

// --- Mocks ---

type mockSources struct {
	attrResults []property.Property
	attrErr     error
	tagResults  []property.Property
	tagErr      error
	descResults []property.Property
	descErr     error
	listResults []property.Property
	listErr     error

	attrCalled bool
	tagCalled  bool
	descCalled bool
	listCalled bool
	lastLimit  int
	lastTags   []string
}

func (m *mockSources) ByAttributes(_ context.Context, _ filters.Filters) ([]property.Property, error) {
	m.attrCalled = true
	return m.attrResults, m.attrErr
}

func (m *mockSources) ByTags(_ context.Context, tags []string) ([]property.Property, error) {
	m.tagCalled = true
	m.lastTags = tags
	return m.tagResults, m.tagErr
}

func (m *mockSources) ByDescription(_ context.Context, _ string) ([]property.Property, error) {
	m.descCalled = true
	return m.descResults, m.descErr
}

func (m *mockSources) List(_ context.Context, limit int) ([]property.Property, error) {
	m.listCalled = true
	m.lastLimit = limit
	return m.listResults, m.listErr
}

func makeProp(id string) property.Property {
	return property.Property{
		ID:          id,
		Title:       "title-" + id,
		Price:       1000,
		Bedrooms:    2,
		Type:        property.House,
		Transaction: property.Sale,
	}
}

func ids(props []property.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []property.Property, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected ids %v, got %v", want, ids(got))
		}
	}
}

// --- Tests ---

func TestReconcile_EmptyInput(t *testing.T) {
	src := &mockSources{}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %v", ids(out))
	}
	if src.attrCalled || src.tagCalled || src.descCalled || src.listCalled {
		t.Error("empty filters must make zero source calls")
	}
}

func TestReconcile_QueryAndTags_Precedence(t *testing.T) {
	// byAttributes = [A, B], byTags ids = {A, C}, byDescription = [C, D].
	// Expected: A (attribute order, in tag set), then C (description hit in
	// tag set, not yet emitted). B is dropped (not in tag set), D too.
	src := &mockSources{
		attrResults: []property.Property{makeProp("A"), makeProp("B")},
		tagResults:  []property.Property{makeProp("A"), makeProp("C")},
		descResults: []property.Property{makeProp("C"), makeProp("D")},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{
		Query: "casa",
		Tags:  []string{"piscina"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, out, "A", "C")
	if !src.attrCalled || !src.tagCalled || !src.descCalled {
		t.Error("query+tags mode must fetch all three sources")
	}
	if src.listCalled {
		t.Error("bulk listing must not be fetched in query+tags mode")
	}
}

func TestReconcile_QueryAndTags_DescriptionPredicate(t *testing.T) {
	cheap := makeProp("C")
	cheap.Price = 50

	src := &mockSources{
		attrResults: []property.Property{makeProp("A")},
		tagResults:  []property.Property{makeProp("A"), cheap},
		descResults: []property.Property{cheap},
	}
	svc := New(src)

	minPrice := 500.0
	out, err := svc.Reconcile(context.Background(), filters.Filters{
		Query:    "casa",
		Tags:     []string{"piscina"},
		MinPrice: &minPrice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// C is in the tag set but fails the price clause.
	assertIDs(t, out, "A")
}

func TestReconcile_QueryOnly(t *testing.T) {
	src := &mockSources{
		attrResults: []property.Property{makeProp("A"), makeProp("B")},
		descResults: []property.Property{makeProp("B"), makeProp("C")},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{Query: "casa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, out, "A", "B", "C")
	if src.tagCalled || src.listCalled {
		t.Error("query-only mode must touch only attribute and description sources")
	}
}

func TestReconcile_TagsOnly_ClientSidePredicate(t *testing.T) {
	pool := makeProp("P")
	pool.Tags = []string{"Piscina grande", "Jardin"}
	pool.Transaction = property.Rent

	sale := makeProp("S")
	sale.Tags = []string{"piscina", "jardin"}

	src := &mockSources{
		tagResults: []property.Property{pool, sale},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{
		Tags:        []string{"piscina", "jardin"},
		Transaction: property.Sale,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, out, "S")
	if src.attrCalled || src.descCalled {
		t.Error("tags-only mode must fetch only the tag source")
	}
	if len(src.lastTags) != 2 {
		t.Errorf("expected 2 tags passed through, got %v", src.lastTags)
	}
}

func TestReconcile_TagsOnly_TagContainment(t *testing.T) {
	tagged := makeProp("T")
	tagged.Tags = []string{"Piscina climatizada", "jardín"}

	untagged := makeProp("U")
	untagged.Tags = []string{"garage"}

	src := &mockSources{
		tagResults: []property.Property{tagged, untagged},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{
		Tags: []string{"piscina"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Substring containment, case-insensitive.
	assertIDs(t, out, "T")
}

func TestReconcile_FiltersOnly(t *testing.T) {
	house := makeProp("H")
	apt := makeProp("AP")
	apt.Type = property.Apartment

	src := &mockSources{
		listResults: []property.Property{house, apt},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{
		Type: property.House,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, out, "H")
	if src.lastLimit != DefaultListLimit {
		t.Errorf("expected list limit %d, got %d", DefaultListLimit, src.lastLimit)
	}
}

func TestReconcile_WithListLimit(t *testing.T) {
	src := &mockSources{}
	svc := New(src).WithListLimit(50)

	_, err := svc.Reconcile(context.Background(), filters.Filters{City: "Puebla"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.lastLimit != 50 {
		t.Errorf("expected list limit 50, got %d", src.lastLimit)
	}
}

func TestReconcile_Dedup(t *testing.T) {
	src := &mockSources{
		attrResults: []property.Property{makeProp("A"), makeProp("A")},
		descResults: []property.Property{makeProp("A")},
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{Query: "casa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, out, "A")
}

func TestReconcile_SourceFailureDiscardsPartials(t *testing.T) {
	boom := errors.New("upstream exploded")
	src := &mockSources{
		attrResults: []property.Property{makeProp("A")},
		descErr:     boom,
	}
	svc := New(src)

	out, err := svc.Reconcile(context.Background(), filters.Filters{Query: "casa"})
	if err == nil {
		t.Fatal("expected error when a source fails")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
	if out != nil {
		t.Errorf("expected no partial output, got %v", ids(out))
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	src := &mockSources{
		attrResults: []property.Property{makeProp("A"), makeProp("B")},
		descResults: []property.Property{makeProp("C")},
	}
	svc := New(src)
	f := filters.Filters{Query: "casa"}

	first, err := svc.Reconcile(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Reconcile(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, second, ids(first)...)
}

func TestModeFor(t *testing.T) {
	minPrice := 100.0
	cases := []struct {
		name string
		f    filters.Filters
		want Mode
	}{
		{"empty", filters.Filters{}, ModeEmpty},
		{"blank query is empty", filters.Filters{Query: "   "}, ModeEmpty},
		{"query and tags", filters.Filters{Query: "q", Tags: []string{"t"}}, ModeQueryTags},
		{"query only", filters.Filters{Query: "q"}, ModeQuery},
		{"tags only", filters.Filters{Tags: []string{"t"}}, ModeTags},
		{"blank tags ignored", filters.Filters{Query: "q", Tags: []string{" "}}, ModeQuery},
		{"filters only", filters.Filters{MinPrice: &minPrice}, ModeFilters},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ModeFor(tc.f); got != tc.want {
				t.Errorf("ModeFor = %q, want %q", got, tc.want)
			}
		})
	}
}
