package models

import "time"

// Property status values as served by the listing API.
const (
	StatusForSale = "for-sale"
	StatusForRent = "for-rent"
	StatusSold    = "sold"
	StatusRented  = "rented"
)

// Property type values as served by the listing API.
const (
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeVilla     = "villa"
	TypeOffice    = "office"
	TypeShop      = "shop"
	TypeLand      = "land"
)

// PropertyStatuses lists every valid transaction status.
var PropertyStatuses = []string{StatusForSale, StatusForRent, StatusSold, StatusRented}

// PropertyTypes lists every valid property category.
var PropertyTypes = []string{TypeApartment, TypeHouse, TypeVilla, TypeOffice, TypeShop, TypeLand}

// Address is the structured location of a property.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Owner is the agent identity embedded in a property payload.
type Owner struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Property represents one real-estate listing.
type Property struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Price       float64   `json:"price"`
	Area        float64   `json:"area"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Furnishing  string    `json:"furnishing"`
	Address     Address   `json:"address"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	Owner       Owner     `json:"owner"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Views       int       `json:"views"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PropertyPage is the paginated response of the property list endpoint.
type PropertyPage struct {
	Properties      []Property `json:"properties"`
	Page            int        `json:"page"`
	Pages           int        `json:"pages"`
	TotalProperties int        `json:"totalProperties"`
}

// ValidStatus reports whether s is one of the enumerated transaction statuses.
func ValidStatus(s string) bool {
	for _, v := range PropertyStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidType reports whether t is one of the enumerated property categories.
func ValidType(t string) bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}
