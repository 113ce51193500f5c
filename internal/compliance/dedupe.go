package compliance

import (
	"sort"

	"mandate/internal/obligation/models"
)

// Dedupe keeps one obligation per (org, user, course version): the latest
// CreatedAt, ties broken by the larger ID. The result is sorted by ID so it
// does not depend on input order. Dropped duplicates are returned for
// reporting.
func Dedupe(obligations []models.Obligation) (kept, dropped []models.Obligation) {
	winners := make(map[models.ObligationKey]models.Obligation, len(obligations))
	for _, o := range obligations {
		k := o.Key()
		cur, ok := winners[k]
		if !ok {
			winners[k] = o
			continue
		}
		if newer(o, cur) {
			winners[k] = o
			dropped = append(dropped, cur)
		} else {
			dropped = append(dropped, o)
		}
	}

	kept = make([]models.Obligation, 0, len(winners))
	for _, o := range winners {
		kept = append(kept, o)
	}
	sortByID(kept)
	sortByID(dropped)
	return kept, dropped
}

func newer(a, b models.Obligation) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func sortByID(obligations []models.Obligation) {
	sort.Slice(obligations, func(i, j int) bool {
		return obligations[i].ID.String() < obligations[j].ID.String()
	})
}
