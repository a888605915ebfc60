package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
)

// CompareService produces the normalized comparison view for a product
// id: one primary fetch, a price join over the listings, and up to two
// best-effort suggestion resolutions.
type CompareService struct {
	catalog domain.CatalogClient
}

// NewCompareService creates a new comparison service
func NewCompareService(client domain.CatalogClient) *CompareService {
	return &CompareService{catalog: client}
}

// BuildView assembles the comparison view for one product id.
// Flow: fetch by id -> normalize listings (price join) -> resolve
// suggestions -> derive best deal. The primary fetch propagates its
// failure; empty listings surface as ErrProductNotFound; a failed
// suggestion fetch is logged and skipped, never fatal.
func (s *CompareService) BuildView(ctx context.Context, npID string) (*domain.ComparisonView, error) {
	resp, err := s.catalog.FetchByID(ctx, npID)
	if err != nil {
		return nil, err
	}

	product, listings, err := catalog.MapComparison(resp)
	if err != nil {
		return nil, err
	}

	view := &domain.ComparisonView{
		Product:     *product,
		Listings:    listings,
		Suggestions: s.resolveSuggestions(ctx, resp.Suggestions),
	}

	if best, ok := BestDeal(listings); ok {
		view.BestDeal = &best
	}

	return view, nil
}

// resolveSuggestions materializes up to two suggestion summaries. The
// two fetches are independent and run concurrently; results keep the
// fixed suggestion1-before-suggestion2 order regardless of which
// completes first.
func (s *CompareService) resolveSuggestions(ctx context.Context, refs domain.SuggestionRefs) []domain.Suggestion {
	ids := []string{refs.Suggestion1.String(), refs.Suggestion2.String()}
	slots := make([]*domain.Suggestion, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		if id == "" {
			continue
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()

			resp, err := s.catalog.FetchByID(ctx, id)
			if err != nil {
				log.Printf("[COMPARE] skipping suggestion %s: %v", id, err)
				return
			}

			summary, err := catalog.MapSuggestion(id, resp)
			if err != nil {
				log.Printf("[COMPARE] skipping suggestion %s: %v", id, err)
				return
			}

			slots[i] = summary
		}(i, id)
	}
	wg.Wait()

	suggestions := make([]domain.Suggestion, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			suggestions = append(suggestions, *s)
		}
	}
	return suggestions
}

// BestDeal selects the listing with the highest trust score. The fold
// is stable: a strictly-greater comparison keeps the earliest listing
// on ties. ok is false for an empty sequence.
func BestDeal(listings []domain.Listing) (domain.Listing, bool) {
	if len(listings) == 0 {
		return domain.Listing{}, false
	}

	best := listings[0]
	for _, l := range listings[1:] {
		if l.TrustScore > best.TrustScore {
			best = l
		}
	}
	return best, true
}
