package stubserver

import (
	"encoding/json"
	"time"

	"estatehub/client/internal/models"
)

// User is the stored account record.
type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	Phone        string
	PasswordHash string
	Salt         string
	Role         string
	Favorites    string // JSON array of property ids
	CreatedAt    time.Time
}

// FavoriteIDs decodes the stored favorites column.
func (u *User) FavoriteIDs() []string {
	ids := []string{}
	if u.Favorites != "" {
		_ = json.Unmarshal([]byte(u.Favorites), &ids)
	}
	return ids
}

// SetFavorites replaces the stored favorites column.
func (u *User) SetFavorites(ids []string) {
	encoded, _ := json.Marshal(ids)
	u.Favorites = string(encoded)
}

// Agent converts the record to the public agent profile shape.
func (u *User) Agent() models.Agent {
	return models.Agent{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// Property is the stored listing record.
type Property struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Type        string
	Status      string
	Price       float64
	Area        float64
	Bedrooms    int
	Bathrooms   int
	Furnishing  string
	Street      string
	City        string
	State       string
	Zip         string
	Images      string // JSON array
	Amenities   string // JSON array
	OwnerID     string `gorm:"index"`
	Latitude    *float64
	Longitude   *float64
	Views       int
	IsFeatured  bool
	CreatedAt   time.Time
}

// Payload converts the record to the wire shape, embedding the owner
// profile when available.
func (p *Property) Payload(owner *User) models.Property {
	out := models.Property{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Status:      p.Status,
		Price:       p.Price,
		Area:        p.Area,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Furnishing:  p.Furnishing,
		Address: models.Address{
			Street: p.Street,
			City:   p.City,
			State:  p.State,
			Zip:    p.Zip,
		},
		Images:     decodeStrings(p.Images),
		Amenities:  decodeStrings(p.Amenities),
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Views:      p.Views,
		IsFeatured: p.IsFeatured,
		CreatedAt:  p.CreatedAt,
	}
	if owner != nil {
		out.Owner = models.Owner{ID: owner.ID, Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	}
	return out
}

func decodeStrings(raw string) []string {
	out := []string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &out)
	}
	return out
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, _ := json.Marshal(values)
	return string(encoded)
}
