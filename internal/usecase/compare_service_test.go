package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopscout/backend/internal/domain"
)

// mockCatalogClient is a mock implementation of domain.CatalogClient
type mockCatalogClient struct {
	mu sync.Mutex

	products    []domain.RawProduct
	productsErr error

	responses map[string]*domain.ComparisonResponse
	errorsByID map[string]error

	searchResults []domain.RawProduct
	searchErr     error
	searchQueries []string

	meta    *domain.RawFilterMeta
	metaErr error

	fetchAllCalls  int
	fetchByIDCalls []string
}

func newMockCatalogClient() *mockCatalogClient {
	return &mockCatalogClient{
		responses:  make(map[string]*domain.ComparisonResponse),
		errorsByID: make(map[string]error),
	}
}

func (m *mockCatalogClient) FetchAll(ctx context.Context) ([]domain.RawProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchAllCalls++
	if m.productsErr != nil {
		return nil, m.productsErr
	}
	return m.products, nil
}

func (m *mockCatalogClient) FetchByID(ctx context.Context, npID string) (*domain.ComparisonResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchByIDCalls = append(m.fetchByIDCalls, npID)
	if err, ok := m.errorsByID[npID]; ok {
		return nil, err
	}
	if resp, ok := m.responses[npID]; ok {
		return resp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalogClient) Search(ctx context.Context, query string) ([]domain.RawProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchQueries = append(m.searchQueries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockCatalogClient) FetchFilterMeta(ctx context.Context) (*domain.RawFilterMeta, error) {
	if m.metaErr != nil {
		return nil, m.metaErr
	}
	return m.meta, nil
}

func (m *mockCatalogClient) FetchVendors(ctx context.Context) ([]domain.Vendor, error) {
	return nil, nil
}

func (m *mockCatalogClient) FetchProductListings(ctx context.Context, npID string) ([]domain.RawListing, error) {
	return nil, nil
}

func (m *mockCatalogClient) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searchQueries)
}

// comparisonFixture builds a two-listing response with prices and the
// given suggestion refs.
func comparisonFixture(npID string, s1, s2 string) *domain.ComparisonResponse {
	return &domain.ComparisonResponse{
		NpID: domain.FlexString(npID),
		Listings: []domain.RawListing{
			{
				Site: "shopmart", SiteURL: "https://shopmart.example/p/1",
				ProductName: "Wireless Mouse", Description: "2.4GHz mouse",
				Category: "Electronics", SubCategory: "Accessories",
				BrandName: "Logi", ImageURL: "https://img.example/1.jpg",
				Rating: "4.3", TrustScore: 8.1,
			},
			{
				Site: "megadeals", URL: "https://megadeals.example/1",
				ProductName: "Wireless Mouse", Rating: 4.0, TrustScore: "6.9",
			},
		},
		Prices: []domain.RawPrice{
			{Site: "shopmart", Price: "799"},
			{Site: "megadeals", Price: 749.0},
		},
		Suggestions: domain.SuggestionRefs{
			Suggestion1: domain.FlexString(s1),
			Suggestion2: domain.FlexString(s2),
		},
	}
}

func suggestionFixture(name string) *domain.ComparisonResponse {
	return &domain.ComparisonResponse{
		Listings: []domain.RawListing{
			{Site: "shopmart", ProductName: name, Rating: "4.0", TrustScore: "7.0"},
		},
	}
}

func TestBuildView(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles view with metadata from first listing", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = comparisonFixture("NP001", "", "")

		svc := NewCompareService(client)

		view, err := svc.BuildView(ctx, "NP001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if view.Product.NpID != "NP001" {
			t.Errorf("NpID = %v, want NP001", view.Product.NpID)
		}
		if view.Product.Name != "Wireless Mouse" {
			t.Errorf("Name = %v, want Wireless Mouse", view.Product.Name)
		}
		if view.Product.Brand != "Logi" {
			t.Errorf("Brand = %v, want Logi", view.Product.Brand)
		}
		if len(view.Listings) != 2 {
			t.Fatalf("len(Listings) = %d, want 2", len(view.Listings))
		}
	})

	t.Run("price join is total and order preserved", func(t *testing.T) {
		client := newMockCatalogClient()
		resp := comparisonFixture("NP001", "", "")
		resp.Prices = resp.Prices[:1] // only shopmart has a price row
		client.responses["NP001"] = resp

		svc := NewCompareService(client)

		view, err := svc.BuildView(ctx, "NP001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if view.Listings[0].Vendor != "shopmart" || view.Listings[1].Vendor != "megadeals" {
			t.Errorf("listing order not preserved: %v, %v", view.Listings[0].Vendor, view.Listings[1].Vendor)
		}
		if view.Listings[0].Price != 799 {
			t.Errorf("Price = %v, want 799", view.Listings[0].Price)
		}
		if view.Listings[1].Price != 0 {
			t.Errorf("unmatched vendor price = %v, want 0", view.Listings[1].Price)
		}
		for _, l := range view.Listings {
			if l.Price < 0 {
				t.Errorf("price %v < 0", l.Price)
			}
		}
	})

	t.Run("propagates primary fetch failure", func(t *testing.T) {
		client := newMockCatalogClient()
		client.errorsByID["NP001"] = domain.ErrCatalogUnavailable

		svc := NewCompareService(client)

		_, err := svc.BuildView(ctx, "NP001")
		if !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("error = %v, want ErrCatalogUnavailable", err)
		}
	})

	t.Run("empty listings surface as product not found", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = &domain.ComparisonResponse{NpID: "NP001"}

		svc := NewCompareService(client)

		_, err := svc.BuildView(ctx, "NP001")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("resolves both suggestions in fixed order", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = comparisonFixture("NP001", "NP002", "NP003")
		client.responses["NP002"] = suggestionFixture("Ergo Keyboard")
		client.responses["NP003"] = suggestionFixture("USB Hub")

		svc := NewCompareService(client)

		view, err := svc.BuildView(ctx, "NP001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(view.Suggestions) != 2 {
			t.Fatalf("len(Suggestions) = %d, want 2", len(view.Suggestions))
		}
		if view.Suggestions[0].NpID != "NP002" || view.Suggestions[1].NpID != "NP003" {
			t.Errorf("suggestion order = %v, %v; want NP002, NP003",
				view.Suggestions[0].NpID, view.Suggestions[1].NpID)
		}
	})

	t.Run("one failed suggestion leaves the survivor", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = comparisonFixture("NP001", "NP002", "NP003")
		client.errorsByID["NP002"] = domain.ErrCatalogUnavailable
		client.responses["NP003"] = suggestionFixture("USB Hub")

		svc := NewCompareService(client)

		view, err := svc.BuildView(ctx, "NP001")
		if err != nil {
			t.Fatalf("suggestion failure must not fail the view: %v", err)
		}

		if len(view.Suggestions) != 1 {
			t.Fatalf("len(Suggestions) = %d, want 1", len(view.Suggestions))
		}
		if view.Suggestions[0].NpID != "NP003" {
			t.Errorf("surviving suggestion = %v, want NP003", view.Suggestions[0].NpID)
		}
	})

	t.Run("suggestion with empty listings is skipped", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = comparisonFixture("NP001", "NP002", "")
		client.responses["NP002"] = &domain.ComparisonResponse{}

		svc := NewCompareService(client)

		view, err := svc.BuildView(ctx, "NP001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Suggestions) != 0 {
			t.Errorf("len(Suggestions) = %d, want 0", len(view.Suggestions))
		}
	})

	t.Run("no suggestion refs issues no extra fetches", func(t *testing.T) {
		client := newMockCatalogClient()
		client.responses["NP001"] = comparisonFixture("NP001", "", "")

		svc := NewCompareService(client)

		if _, err := svc.BuildView(ctx, "NP001"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(client.fetchByIDCalls) != 1 {
			t.Errorf("fetchByID calls = %d, want 1", len(client.fetchByIDCalls))
		}
	})
}

func TestBestDeal(t *testing.T) {
	t.Run("first occurrence of max trust score wins", func(t *testing.T) {
		listings := []domain.Listing{
			{Vendor: "a", TrustScore: 5},
			{Vendor: "b", TrustScore: 8},
			{Vendor: "c", TrustScore: 8},
			{Vendor: "d", TrustScore: 3},
		}

		best, ok := BestDeal(listings)
		if !ok {
			t.Fatal("ok = false, want true")
		}
		if best.Vendor != "b" {
			t.Errorf("best = %v, want b (index 1)", best.Vendor)
		}
	})

	t.Run("empty sequence has no best deal", func(t *testing.T) {
		_, ok := BestDeal(nil)
		if ok {
			t.Error("ok = true, want false for empty listings")
		}
	})

	t.Run("single listing is the best deal", func(t *testing.T) {
		best, ok := BestDeal([]domain.Listing{{Vendor: "only", TrustScore: 0}})
		if !ok || best.Vendor != "only" {
			t.Errorf("best = %v ok = %v, want only/true", best.Vendor, ok)
		}
	})
}

func TestBuildView_BestDealIncluded(t *testing.T) {
	client := newMockCatalogClient()
	client.responses["NP001"] = comparisonFixture("NP001", "", "")

	svc := NewCompareService(client)

	view, err := svc.BuildView(context.Background(), "NP001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.BestDeal == nil {
		t.Fatal("BestDeal = nil, want the highest-trust listing")
	}
	if view.BestDeal.Vendor != "shopmart" {
		t.Errorf("BestDeal = %v, want shopmart (trust 8.1)", view.BestDeal.Vendor)
	}
}
