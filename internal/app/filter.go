package app

import (
	"sort"
	"strings"

	"hotel_desk/internal/domain"
)

// ApplyFilter narrows and orders a hotel list. The pipeline order is part of
// the contract: free text, then city facet, then country facet, then rating
// floor, then exactly one sort. The input slice is never mutated and the
// result is deterministic for a fixed input (stable sort, ties keep input
// order).
func ApplyFilter(hotels []domain.Hotel, q domain.FilterQuery) []domain.Hotel {
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if !matchesTerm(h, term) {
			continue
		}
		if len(q.Cities) > 0 && !containsStr(q.Cities, h.City) {
			continue
		}
		if len(q.Countries) > 0 && !containsStr(q.Countries, h.Country) {
			continue
		}
		if h.Rating < q.MinRating {
			continue
		}
		out = append(out, h)
	}

	sortHotels(out, q.Sort)
	return out
}

// matchesTerm reports whether the lowercased term is a substring of any of
// the searchable fields. Missing fields are skipped, not treated as a match.
func matchesTerm(h domain.Hotel, term string) bool {
	if term == "" {
		return true
	}
	for _, f := range []string{h.Name, h.City, h.Country, h.Description} {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func containsStr(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func sortHotels(hs []domain.Hotel, key domain.SortKey) {
	switch key {
	case domain.SortNameAsc:
		sort.SliceStable(hs, func(i, j int) bool {
			return strings.ToLower(hs[i].Name) < strings.ToLower(hs[j].Name)
		})
	case domain.SortNameDesc:
		sort.SliceStable(hs, func(i, j int) bool {
			return strings.ToLower(hs[i].Name) > strings.ToLower(hs[j].Name)
		})
	case domain.SortRatingDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Rating > hs[j].Rating })
	case domain.SortRoomsDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].RoomsCount > hs[j].RoomsCount })
	default: // newest first; legacy records without a timestamp fall back to id
		sort.SliceStable(hs, func(i, j int) bool {
			a, b := hs[i], hs[j]
			if a.CreatedAt.IsZero() || b.CreatedAt.IsZero() {
				return a.ID > b.ID
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	}
}

// ComputeStats derives the dashboard aggregates in one read-only pass.
// Averages on an empty list yield 0, never a division failure.
func ComputeStats(hotels []domain.Hotel) domain.Stats {
	st := domain.Stats{TotalHotels: len(hotels)}
	if len(hotels) == 0 {
		return st
	}

	cities := make(map[string]struct{})
	var ratingSum, priceSum float64
	priced := 0
	for _, h := range hotels {
		st.TotalRooms += h.RoomsCount
		ratingSum += h.Rating
		if h.City != "" {
			cities[h.City] = struct{}{}
		}
		if h.Price > 0 {
			priced++
			priceSum += h.Price
			if st.MinPrice == 0 || h.Price < st.MinPrice {
				st.MinPrice = h.Price
			}
			if h.Price > st.MaxPrice {
				st.MaxPrice = h.Price
			}
		}
	}
	st.CitiesCovered = len(cities)
	st.AverageRating = ratingSum / float64(len(hotels))
	if priced > 0 {
		st.AveragePrice = priceSum / float64(priced)
	}
	return st
}
