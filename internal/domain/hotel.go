package domain

import (
	"strings"
	"time"
)

// DefaultCurrency is applied when a record carries no currency code.
const DefaultCurrency = "XOF"

// Hotel is one managed property. JSON tags match the persisted blob layout;
// the mixed field naming (rooms_count vs imageUrl) is the recorded on-disk
// contract and is kept for compatibility with existing data.
type Hotel struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	Address     string     `json:"address,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	RoomsCount  int        `json:"rooms_count"`
	Rating      float64    `json:"rating"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency,omitempty"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Normalize fills every implicit default once, at repository ingress, so
// downstream code can assume a fully populated record. Legacy records may
// still carry a zero CreatedAt; readers fall back to ID order for those.
func (h Hotel) Normalize() Hotel {
	h.Name = strings.TrimSpace(h.Name)
	h.City = strings.TrimSpace(h.City)
	h.Country = strings.TrimSpace(h.Country)
	if h.Currency == "" {
		h.Currency = DefaultCurrency
	}
	if h.RoomsCount < 0 {
		h.RoomsCount = 0
	}
	if h.Rating < 0 {
		h.Rating = 0
	}
	if h.Price < 0 {
		h.Price = 0
	}
	return h
}
