package availability

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// Property is a sibling listing returned by the property-search
// collaborator.
type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// PropertySearcher fetches sibling properties for an unavailable stay.
type PropertySearcher interface {
	SimilarProperties(ctx context.Context, propertyID string, checkIn, checkOut calendar.Date, nights int) ([]Property, error)
}

// Quote is a price computed by the pricing collaborator for one stay.
type Quote struct {
	TotalPrice    float64 `json:"total_price"`
	PricePerNight float64 `json:"price_per_night"`
	Currency      string  `json:"currency"`
}

// PriceQuoter calls the remote pricing service.
type PriceQuoter interface {
	Quote(ctx context.Context, propertyID string, checkIn, checkOut calendar.Date) (Quote, error)
}

// Alternative is one sibling property together with the stays it can host
// in the requested window.
type Alternative struct {
	Property Property      `json:"property"`
	Slots    []domain.Slot `json:"slots"`
	Price    *Quote        `json:"price,omitempty"`
}

// AlternativesResult carries the candidates plus the request key callers
// use to discard answers from superseded searches.
type AlternativesResult struct {
	RequestKey   string        `json:"request_key"`
	Alternatives []Alternative `json:"alternatives"`
}

// Orchestrator fans an unavailable-stay search out across sibling
// properties.
type Orchestrator struct {
	Search  PropertySearcher
	Service *Service
	Pricing PriceQuoter
	Logger  *slog.Logger
}

// FindAlternatives asks the property-search collaborator for siblings and
// re-runs the slot finder against each candidate's own occupancy.
//
// The fan-out is best effort: all candidates are fetched concurrently, a
// failed fetch is logged and treated as "no slots" for that candidate
// alone, and candidates without a single matching slot are dropped. Order
// of the surviving candidates follows the collaborator's ranking.
func (o *Orchestrator) FindAlternatives(ctx context.Context, propertyID string, w domain.SearchWindow) (AlternativesResult, error) {
	result := AlternativesResult{RequestKey: uuid.NewString()}

	first, last, err := w.Bounds()
	if err != nil {
		return result, err
	}
	candidates, err := o.Search.SimilarProperties(ctx, propertyID, first, last, w.Nights)
	if err != nil {
		return result, err
	}

	slotsByCandidate := make([][]domain.Slot, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate Property) {
			defer wg.Done()
			slots, err := o.Service.FindSlots(ctx, candidate.ID, w)
			if err != nil {
				o.log().Warn("alternative candidate skipped",
					"request_key", result.RequestKey,
					"property_id", candidate.ID,
					"error", err)
				return
			}
			slotsByCandidate[i] = slots
		}(i, candidate)
	}
	wg.Wait()

	for i, candidate := range candidates {
		slots := slotsByCandidate[i]
		if len(slots) == 0 {
			continue
		}
		alt := Alternative{Property: candidate, Slots: slots}
		if o.Pricing != nil {
			if quote, err := o.Pricing.Quote(ctx, candidate.ID, slots[0].CheckIn, slots[0].CheckOut); err != nil {
				o.log().Warn("alternative price quote failed",
					"request_key", result.RequestKey,
					"property_id", candidate.ID,
					"error", err)
			} else {
				alt.Price = &quote
			}
		}
		result.Alternatives = append(result.Alternatives, alt)
	}
	return result, nil
}

func (o *Orchestrator) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
