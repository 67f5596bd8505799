package domain

// SortKey selects the single comparator applied after filtering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortRoomsDesc  SortKey = "rooms_desc"
)

// ParseSortKey maps a wire value to a SortKey, defaulting to newest-first.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortRatingDesc, SortRoomsDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// FilterQuery narrows and orders the hotel list. Empty facet slices and a
// zero MinRating mean "no restriction"; facet values are OR'd within a
// dimension and AND'd across dimensions.
type FilterQuery struct {
	SearchTerm string
	Cities     []string
	Countries  []string
	MinRating  float64
	Sort       SortKey
}

// Stats is the read-only aggregate pass consumed by the dashboard.
type Stats struct {
	TotalHotels   int     `json:"totalHotels"`
	TotalRooms    int     `json:"totalRooms"`
	AverageRating float64 `json:"averageRating"`
	CitiesCovered int     `json:"citiesCovered"`
	AveragePrice  float64 `json:"averagePrice"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
}
