package promotion

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"anchor/internal/clock"
	"anchor/internal/londontime"
	"anchor/internal/metrics"
)

// Resolver answers "which promotion is live right now" against the current
// catalog. Windows are inclusive London calendar dates.
type Resolver struct {
	store *Store
	clock clock.Clock
	log   zerolog.Logger
}

// NewResolver creates a resolver over the given catalog store.
func NewResolver(store *Store, clk clock.Clock, logger zerolog.Logger) *Resolver {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Resolver{store: store, clock: clk, log: logger}
}

// Current returns the promotion live at the current London date, or nil.
func (r *Resolver) Current() *Promotion {
	return r.CurrentAt(londontime.Noon(r.clock.Now()))
}

// CurrentAt returns the promotion whose window contains now, or nil. When
// windows overlap the latest start date wins; ties on identical windows
// resolve the same way via the date-string comparison, so the result is
// deterministic for any catalog.
func (r *Resolver) CurrentAt(now time.Time) *Promotion {
	var candidates []Promotion
	for _, p := range r.store.Catalog().Promotions {
		if !p.Active {
			continue
		}
		start, end, err := londontime.RangeToInstants(p.StartDate, p.EndDate)
		if err != nil {
			// Catalog validation guarantees the format; treat anything
			// slipping through as not-current rather than failing.
			r.log.Error().Str("id", p.ID).Err(err).Msg("unparsable promotion window")
			continue
		}
		if londontime.InRange(now, start, end) {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) == 0 {
		metrics.IncPromotionResolution("miss")
		// A gap at the start of a month usually means the content team
		// forgot to load the next promotion. Operational signal only.
		if day := now.In(londontime.Location()).Day(); day >= 1 && day <= 3 {
			r.log.Warn().
				Time("now", now).
				Msg("no active promotion in the first days of the month")
		}
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartDate > candidates[j].StartDate
	})

	metrics.IncPromotionResolution("hit")
	return &candidates[0]
}

// Next returns the upcoming promotion relative to the current London date.
func (r *Resolver) Next() *Promotion {
	return r.NextAt(londontime.Noon(r.clock.Now()))
}

// NextAt returns the active promotion with the earliest start strictly after
// now, or nil if nothing is scheduled.
func (r *Resolver) NextAt(now time.Time) *Promotion {
	var upcoming []Promotion
	for _, p := range r.store.Catalog().Promotions {
		if !p.Active {
			continue
		}
		start, _, err := londontime.RangeToInstants(p.StartDate, p.EndDate)
		if err != nil {
			r.log.Error().Str("id", p.ID).Err(err).Msg("unparsable promotion window")
			continue
		}
		if start.After(now) {
			upcoming = append(upcoming, p)
		}
	}

	if len(upcoming) == 0 {
		return nil
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate < upcoming[j].StartDate
	})
	return &upcoming[0]
}

// ByID looks up a promotion for preview mode. Nil on miss.
func (r *Resolver) ByID(id string) *Promotion {
	return r.store.Catalog().ByID(id)
}

// All returns every validated promotion in catalog order.
func (r *Resolver) All() []Promotion {
	return r.store.Catalog().Promotions
}
